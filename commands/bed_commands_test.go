package commands

import (
	"testing"
	"time"

	"stayhub/models"
)

var now = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*models.Property, string, []string) {
	t.Helper()
	p := &models.Property{ID: "p1", IsActive: true}
	room, err := p.AddRoom(models.RoomSpec{NoOfSharing: 2, ACType: models.ACTypeAC, BedSize: models.BedSizeSingle, Rent: 3000, TotalBeds: 2}, now)
	if err != nil {
		t.Fatal(err)
	}
	return p, room.ID, []string{room.Beds[0].ID, room.Beds[1].ID}
}

func claim(t *testing.T, p *models.Property, roomID, bedID, bookingID string, status models.BedStatus) {
	t.Helper()
	cmd := NewClaimBedCommand(roomID, bedID, status, models.Occupant{BookingID: bookingID, Name: "Ravi", CheckIn: now, BookedAt: now})
	if err := cmd.Apply(p); err != nil {
		t.Fatalf("claim: %v", err)
	}
}

func bedStatus(p *models.Property, roomID, bedID string) models.BedStatus {
	_, bed, _ := p.Bed(roomID, bedID)
	return bed.Status
}

func TestReleaseIgnoresOtherBooking(t *testing.T) {
	p, roomID, beds := setup(t)
	claim(t, p, roomID, beds[0], "b2", models.BedOccupied)

	cmd := NewReleaseBedCommand(roomID, beds[0], "b1")
	if err := cmd.Apply(p); err != nil {
		t.Fatal(err)
	}
	if cmd.Released || bedStatus(p, roomID, beds[0]) != models.BedOccupied {
		t.Fatal("released a bed held by another booking")
	}
}

func TestReleaseOnlyIf(t *testing.T) {
	p, roomID, beds := setup(t)
	claim(t, p, roomID, beds[0], "b1", models.BedOccupied)

	cmd := NewReleaseBedCommand(roomID, beds[0], "b1", models.BedOnBook)
	if err := cmd.Apply(p); err != nil {
		t.Fatal(err)
	}
	if cmd.Released {
		t.Fatal("occupied bed released by onbook-only release")
	}

	claim(t, p, roomID, beds[1], "b2", models.BedOnBook)
	cmd = NewReleaseBedCommand(roomID, beds[1], "b2", models.BedOnBook)
	if err := cmd.Apply(p); err != nil {
		t.Fatal(err)
	}
	if !cmd.Released || bedStatus(p, roomID, beds[1]) != models.BedAvailable {
		t.Fatal("onbook bed not released")
	}
	if p.AvailableBeds != 1 || p.OccupiedBeds != 1 {
		t.Errorf("roll-ups available %d occupied %d", p.AvailableBeds, p.OccupiedBeds)
	}
}

func TestTransitionSkip(t *testing.T) {
	p, roomID, beds := setup(t)
	claim(t, p, roomID, beds[0], "b1", models.BedOccupied)

	cmd := NewTransitionBedCommand(roomID, beds[0], models.BedOccupied, now)
	cmd.Skip = []models.BedStatus{models.BedOccupied, models.BedNotice}
	if err := cmd.Apply(p); err != nil {
		t.Fatalf("skip should make this a no-op: %v", err)
	}
	if err := NewTransitionBedCommand(roomID, beds[0], models.BedOccupied, now).Apply(p); err == nil {
		t.Fatal("expected occupied -> occupied to fail without skip")
	}
}

func TestSequenceMovesWithinProperty(t *testing.T) {
	p, roomID, beds := setup(t)
	claim(t, p, roomID, beds[0], "b1", models.BedOccupied)

	seq := Sequence{
		NewReleaseBedCommand(roomID, beds[0], "b1"),
		NewClaimBedCommand(roomID, beds[1], models.BedOccupied, models.Occupant{BookingID: "b1", CheckIn: now, BookedAt: now}),
	}
	if err := seq.Apply(p); err != nil {
		t.Fatal(err)
	}
	if bedStatus(p, roomID, beds[0]) != models.BedAvailable || bedStatus(p, roomID, beds[1]) != models.BedOccupied {
		t.Fatal("move did not swap beds")
	}
	if p.OccupiedBeds != 1 || p.AvailableBeds != 1 {
		t.Errorf("roll-ups available %d occupied %d", p.AvailableBeds, p.OccupiedBeds)
	}
}

func TestUpdateCheckIn(t *testing.T) {
	p, roomID, beds := setup(t)
	claim(t, p, roomID, beds[0], "b1", models.BedOnBook)

	later := now.AddDate(0, 0, 14)
	cmd := &UpdateCheckInCommand{RoomID: roomID, BedID: beds[0], BookingID: "b1", CheckIn: later}
	if err := cmd.Apply(p); err != nil {
		t.Fatal(err)
	}
	_, bed, _ := p.Bed(roomID, beds[0])
	if !bed.JoiningDate.Equal(later) || !bed.RentDueDate.Equal(later.AddDate(0, 1, 0)) {
		t.Errorf("dates = %v / %v", bed.JoiningDate, bed.RentDueDate)
	}
}
