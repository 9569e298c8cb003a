package notification

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestMessageBuilder(t *testing.T) {
	raw := NewMessageBuilder(BookingCancelled).
		Booking("BK12345678").
		Bed("p1", "r1", "b1").
		Status("cancelled").
		Build()

	var evt Event
	if err := json.Unmarshal([]byte(raw), &evt); err != nil {
		t.Fatalf("not json: %s", raw)
	}
	if evt.Type != BookingCancelled || evt.BookingID != "BK12345678" || evt.BedID != "b1" || evt.Status != "cancelled" {
		t.Errorf("event = %+v", evt)
	}
	if evt.At.IsZero() {
		t.Error("event has no timestamp")
	}
}

func TestRecorderCopiesMessages(t *testing.T) {
	r := &Recorder{}
	_ = r.SendMessage("a")
	got := r.Messages()
	got[0] = "changed"
	if r.Messages()[0] != "a" {
		t.Error("Messages exposed internal slice")
	}
}

func TestMelodyServiceWithoutInstance(t *testing.T) {
	if err := NewMelodyService(nil).SendMessage("x"); err == nil {
		t.Fatal("expected an error without a melody instance")
	}
}
