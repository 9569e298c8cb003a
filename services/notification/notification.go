package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// NopService drops every message.
type NopService struct{}

func (NopService) SendMessage(string) error { return nil }

// Recorder keeps messages in memory for tests.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) SendMessage(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

const (
	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingCancelled = "booking.cancelled"
	BookingDeleted   = "booking.deleted"
	BedStatusChanged = "bed.status_changed"
)

// Event là message được broadcast tới dashboard
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId,omitempty"`
	PropertyID string    `json:"propertyId,omitempty"`
	RoomID     string    `json:"roomId,omitempty"`
	BedID      string    `json:"bedId,omitempty"`
	Status     string    `json:"status,omitempty"`
	At         time.Time `json:"at"`
}

type MessageBuilder struct {
	evt Event
}

func NewMessageBuilder(kind string) *MessageBuilder {
	return &MessageBuilder{evt: Event{Type: kind, At: time.Now()}}
}

func (b *MessageBuilder) Booking(id string) *MessageBuilder {
	b.evt.BookingID = id
	return b
}

func (b *MessageBuilder) Bed(propertyID, roomID, bedID string) *MessageBuilder {
	b.evt.PropertyID = propertyID
	b.evt.RoomID = roomID
	b.evt.BedID = bedID
	return b
}

func (b *MessageBuilder) Status(status string) *MessageBuilder {
	b.evt.Status = status
	return b
}

func (b *MessageBuilder) Build() string {
	raw, err := json.Marshal(b.evt)
	if err != nil {
		return fmt.Sprintf(`{"type":%q}`, b.evt.Type)
	}
	return string(raw)
}
