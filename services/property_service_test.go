package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
)

func TestCreatePropertyStartsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.props.Create(ctx, "vendor-1", propertyRequest("Green Nest"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.PropertyID != "PG1001" || p.Slug != "green-nest-pg1001" {
		t.Errorf("ids = %s %s", p.PropertyID, p.Slug)
	}
	if p.Status != models.PropertyStatusDraft || !p.IsActive {
		t.Errorf("status = %s active=%v", p.Status, p.IsActive)
	}
	if p.TotalBeds != 0 || p.AvailableBeds != 0 || p.TotalRooms != 0 || p.MonthlyRevenue != 0 {
		t.Errorf("roll-ups not zero: %+v", p)
	}
	if len(p.Amenities) != 2 {
		t.Errorf("amenities = %v", p.Amenities)
	}

	room, p, err := f.rooms.AddRoom(ctx, p.ID, "vendor-1", roomRequest(3))
	if err != nil {
		t.Fatalf("AddRoom: %v", err)
	}
	if room.DisplayName != "3-Sharing-AC" || len(room.Beds) != 3 {
		t.Errorf("room = %s with %d beds", room.DisplayName, len(room.Beds))
	}
	if p.TotalBeds != 3 || p.AvailableBeds != 3 || p.TotalRooms != 1 {
		t.Errorf("roll-ups total=%d available=%d rooms=%d", p.TotalBeds, p.AvailableBeds, p.TotalRooms)
	}

	second, err := f.props.Create(ctx, "vendor-1", propertyRequest("Second"))
	if err != nil {
		t.Fatal(err)
	}
	if second.PropertyID != "PG1002" {
		t.Errorf("second id = %s", second.PropertyID)
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := propertyRequest("Green Nest")
	bad.ContactNumber = "12345"
	if _, err := f.props.Create(ctx, "vendor-1", bad); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("short phone: %v", err)
	}

	bad = propertyRequest("Green Nest")
	bad.Pincode = "56003A"
	if _, err := f.props.Create(ctx, "vendor-1", bad); !errors.HasCode(err, errors.ErrCodeValidation) || !strings.Contains(err.Error(), "Pincode") {
		t.Errorf("bad pincode: %v", err)
	}

	bad = propertyRequest("  ")
	if _, err := f.props.Create(ctx, "vendor-1", bad); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("blank name: %v", err)
	}

	if _, err := f.props.Create(ctx, "", propertyRequest("No Vendor")); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("missing vendor: %v", err)
	}
}

func TestVendorScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, room := f.propertyWithRoom(t, "vendor-1", 2)

	if _, err := f.props.Get(ctx, p.ID, "vendor-2"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("foreign get: %v", err)
	}
	if _, _, err := f.rooms.AddRoom(ctx, p.ID, "vendor-2", roomRequest(1)); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("foreign add room: %v", err)
	}
	if _, err := f.rooms.GetRoom(ctx, p.ID, "vendor-2", room.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("foreign get room: %v", err)
	}
	if _, err := f.props.Get(ctx, p.ID, ""); err != nil {
		t.Errorf("admin get: %v", err)
	}

	rooms, err := f.rooms.ListRooms(ctx, p.ID, "vendor-1")
	if err != nil || len(rooms) != 1 || rooms[0].Parents.PropertyID != p.PropertyID {
		t.Errorf("rooms = %+v, %v", rooms, err)
	}
}

func TestVendorEditResetsToDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.propertyWithRoom(t, "vendor-1", 1)

	if _, err := f.props.SetStatus(ctx, p.ID, models.PropertyStatusPublic); err != nil {
		t.Fatal(err)
	}
	req := propertyRequest("Green Nest Deluxe")
	updated, err := f.props.Update(ctx, p.ID, "vendor-1", req)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.PropertyStatusDraft || updated.Slug != "green-nest-deluxe-pg1001" {
		t.Errorf("status=%s slug=%s", updated.Status, updated.Slug)
	}
	if updated.TotalBeds != 1 {
		t.Errorf("rooms lost on edit: totalBeds=%d", updated.TotalBeds)
	}

	admin, err := f.props.AdminUpdate(ctx, p.ID, dto.AdminPropertyRequest{PropertyRequest: req, Status: models.PropertyStatusPublic})
	if err != nil {
		t.Fatalf("AdminUpdate: %v", err)
	}
	if admin.Status != models.PropertyStatusPublic {
		t.Errorf("admin status = %s", admin.Status)
	}
	if _, err := f.props.SetStatus(ctx, p.ID, "archived"); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("bad status: %v", err)
	}
}

func TestPublicListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft, _ := f.propertyWithRoom(t, "vendor-1", 1)
	live, err := f.props.Create(ctx, "vendor-1", propertyRequest("Live One"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.props.SetStatus(ctx, live.ID, models.PropertyStatusPublic); err != nil {
		t.Fatal(err)
	}

	page, err := f.props.ListPublic(ctx, dto.PropertyQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].ID != live.ID || page.Limit != 10 || page.Page != 1 {
		t.Errorf("page = %+v", page)
	}

	if _, err := f.props.GetPublic(ctx, draft.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("draft visible: %v", err)
	}
	bySlug, err := f.props.GetPublic(ctx, live.Slug)
	if err != nil || bySlug.ID != live.ID {
		t.Errorf("by slug = %v, %v", bySlug, err)
	}
}

func TestSoftDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, room := f.propertyWithRoom(t, "vendor-1", 2)
	st := f.student(t, "asha@example.com", "9000000001")

	b, err := f.bookings.Create(ctx, adminBooking(st.ID, p, room, 0))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.props.SoftDelete(ctx, p.ID, "vendor-1"); err != errors.ErrPropertyHasOccupied {
		t.Fatalf("delete while occupied: %v", err)
	}
	if _, err := f.rooms.DeleteRoom(ctx, p.ID, "vendor-1", room.ID); err != errors.ErrRoomHasOccupied {
		t.Fatalf("delete room while occupied: %v", err)
	}

	if err := f.bookings.Delete(ctx, b.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.props.SoftDelete(ctx, p.ID, "vendor-1"); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := f.props.Get(ctx, p.ID, "vendor-1"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("deleted property still visible to vendor: %v", err)
	}
	list, _, _, total, _ := f.props.List(ctx, "vendor-1", dto.PropertyQuery{})
	if total != 0 || len(list) != 0 {
		t.Errorf("list after delete = %d", total)
	}
}

func TestResizeBelowOccupied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, room := f.propertyWithRoom(t, "vendor-1", 3)
	st := f.student(t, "asha@example.com", "9000000001")
	if _, err := f.bookings.Create(ctx, adminBooking(st.ID, p, room, 0)); err != nil {
		t.Fatal(err)
	}

	_, _, err := f.rooms.UpdateRoom(ctx, p.ID, "vendor-1", room.ID, roomRequest(1))
	if err != errors.ErrBedsBelowOccupied {
		t.Fatalf("err = %v", err)
	}
	got, _ := f.rooms.GetRoom(ctx, p.ID, "vendor-1", room.ID)
	if got.TotalBeds != 3 || len(got.Beds) != 3 {
		t.Errorf("room changed: total=%d beds=%d", got.TotalBeds, len(got.Beds))
	}

	grown, prop, err := f.rooms.UpdateRoom(ctx, p.ID, "vendor-1", room.ID, roomRequest(5))
	if err != nil {
		t.Fatalf("grow: %v", err)
	}
	if len(grown.Beds) != 5 || prop.TotalBeds != 5 || prop.AvailableBeds != 4 {
		t.Errorf("grown beds=%d total=%d available=%d", len(grown.Beds), prop.TotalBeds, prop.AvailableBeds)
	}
}

func TestSetBedStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, room := f.propertyWithRoom(t, "vendor-1", 3)
	st := f.student(t, "asha@example.com", "9000000001")
	booked, err := f.bookings.Create(ctx, adminBooking(st.ID, p, room, 0))
	if err != nil {
		t.Fatal(err)
	}
	occupied, free := room.Beds[0].ID, room.Beds[1].ID

	bed, err := f.rooms.SetBedStatus(ctx, p.ID, "vendor-1", room.ID, free, models.BedMaintenance)
	if err != nil || bed.Status != models.BedMaintenance {
		t.Fatalf("maintenance: %v %v", bed, err)
	}
	if got := f.property(t, p.ID); got.MaintenanceBeds != 1 || got.AvailableBeds != 1 {
		t.Errorf("roll-ups maintenance=%d available=%d", got.MaintenanceBeds, got.AvailableBeds)
	}

	if _, err := f.rooms.SetBedStatus(ctx, p.ID, "vendor-1", room.ID, occupied, models.BedAvailable); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("freeing a booked bed: %v", err)
	}
	if _, err := f.rooms.SetBedStatus(ctx, p.ID, "vendor-1", room.ID, free, models.BedOccupied); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("manual occupy: %v", err)
	}

	notice, err := f.rooms.SetBedStatus(ctx, p.ID, "vendor-1", room.ID, occupied, models.BedNotice)
	if err != nil {
		t.Fatalf("notice: %v", err)
	}
	if notice.NoticeDate == nil || !notice.NoticeDate.Equal(f.clock()) || notice.StudentEmail != st.Email {
		t.Errorf("notice bed = %+v", notice)
	}
	if got := f.property(t, p.ID); got.NoticeBeds != 1 || got.MonthlyRevenue != 6000 {
		t.Errorf("notice roll-ups = %d revenue %v", got.NoticeBeds, got.MonthlyRevenue)
	}

	// a bed on notice still belongs to its booking
	if _, err := f.rooms.SetBedStatus(ctx, p.ID, "vendor-1", room.ID, occupied, models.BedAvailable); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("freeing a notice bed: %v", err)
	}
	other := f.student(t, "ravi@example.com", "9000000002")
	if _, err := f.bookings.Create(ctx, adminBooking(other.ID, p, room, 0)); !errors.HasCode(err, errors.ErrCodeConflict) {
		t.Errorf("second booking on notice bed: %v", err)
	}
	if _, err := f.bookings.UpdateStatus(ctx, booked.ID, "vendor-1", models.BookingCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b := f.bed(t, p.ID, room.ID, occupied); b.Status != models.BedAvailable || b.BookingID != "" {
		t.Errorf("bed after completion = %+v", b)
	}

	if _, err := f.rooms.SetBedStatus(ctx, p.ID, "vendor-2", room.ID, free, models.BedAvailable); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("foreign vendor: %v", err)
	}
	if len(f.events.Messages()) < 2 {
		t.Errorf("bed events = %d", len(f.events.Messages()))
	}
}

func TestStaleHoldsAndRecompute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, room := f.propertyWithRoom(t, "vendor-1", 2)
	st := f.student(t, "asha@example.com", "9000000001")

	b, err := f.bookings.CreateFrontend(ctx, frontendBooking(st.Email, st.Phone, p, room, 0))
	if err != nil {
		t.Fatal(err)
	}

	holds, err := f.props.StaleHolds(ctx, 72*time.Hour)
	if err != nil || len(holds) != 0 {
		t.Fatalf("fresh holds = %v, %v", holds, err)
	}

	f.advance(100 * time.Hour)
	holds, err = f.props.StaleHolds(ctx, 72*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if len(holds) != 1 || holds[0].BookingID != b.ID || holds[0].PropertyName != "Green Nest" {
		t.Fatalf("holds = %+v", holds)
	}

	fixed, err := f.props.RecomputeAll(ctx)
	if err != nil || fixed != 0 {
		t.Errorf("recompute fixed %d, %v", fixed, err)
	}
}
