package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"stayhub/dto"
	"stayhub/models"
	"stayhub/services/logger"
	"stayhub/services/notification"
	"stayhub/store/memstore"
)

// fixture wires every service against one in-memory store and a movable clock.
type fixture struct {
	store    *memstore.Store
	props    *PropertyService
	rooms    *RoomService
	bookings *BookingService
	payments *PaymentService
	events   *notification.Recorder

	mu  sync.Mutex
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  memstore.New(),
		events: &notification.Recorder{},
		now:    time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
	}
	log := logger.NewNopLogger()
	f.props = NewPropertyService(PropertyServiceOptions{Store: f.store, Logger: log, IDPrefix: "PG", IDOffset: 1000, Now: f.clock})
	f.rooms = NewRoomService(RoomServiceOptions{Store: f.store, Logger: log, Notifier: f.events, Now: f.clock})
	f.bookings = NewBookingService(BookingServiceOptions{Store: f.store, Logger: log, Notifier: f.events, Now: f.clock})
	f.payments = NewPaymentService(PaymentServiceOptions{Store: f.store, Logger: log})
	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func propertyRequest(name string) dto.PropertyRequest {
	return dto.PropertyRequest{
		Name:          name,
		Type:          models.PropertyTypePG,
		Gender:        "male",
		Area:          "Koramangala",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560034",
		ContactNumber: "9876543210",
		Amenities:     []string{"wifi", " ", "laundry"},
	}
}

func roomRequest(beds int) dto.RoomRequest {
	return dto.RoomRequest{
		NoOfSharing: 3,
		ACType:      models.ACTypeAC,
		BedSize:     models.BedSizeSingle,
		Rent:        6000,
		TotalBeds:   beds,
	}
}

// propertyWithRoom creates a property for vendorID holding one room of beds.
func (f *fixture) propertyWithRoom(t *testing.T, vendorID string, beds int) (*models.Property, *models.Room) {
	t.Helper()
	ctx := context.Background()
	p, err := f.props.Create(ctx, vendorID, propertyRequest("Green Nest"))
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	room, p, err := f.rooms.AddRoom(ctx, p.ID, vendorID, roomRequest(beds))
	if err != nil {
		t.Fatalf("add room: %v", err)
	}
	return p, room
}

func (f *fixture) student(t *testing.T, email, phone string) *models.Student {
	t.Helper()
	st := &models.Student{Name: "Asha", Email: email, Phone: phone, ReferralCode: models.NewReferralCode(), IsActive: true}
	if err := f.store.Students().Create(context.Background(), st); err != nil {
		t.Fatalf("create student: %v", err)
	}
	return st
}

func (f *fixture) bed(t *testing.T, propertyID, roomID, bedID string) models.Bed {
	t.Helper()
	p, err := f.store.Properties().Get(context.Background(), propertyID)
	if err != nil {
		t.Fatalf("load property: %v", err)
	}
	_, bed, err := p.Bed(roomID, bedID)
	if err != nil {
		t.Fatalf("load bed: %v", err)
	}
	return *bed
}

func (f *fixture) property(t *testing.T, id string) *models.Property {
	t.Helper()
	p, err := f.store.Properties().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("load property: %v", err)
	}
	return p
}
