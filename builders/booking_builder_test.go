package builders

import (
	"strings"
	"testing"
	"time"

	"stayhub/models"
)

func TestBookingBuilderDefaults(t *testing.T) {
	b := NewBookingBuilder().
		WithStudent("s1").
		WithBed("p1", "r1", "bed1").
		WithCheckIn(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).
		WithAmounts(9000, 3000).
		WithPayment("upi", "").
		Build()

	if b.ID == "" || !strings.HasPrefix(b.BookingID, "BK") {
		t.Errorf("ids not assigned: %q %q", b.ID, b.BookingID)
	}
	if b.BookingStatus != models.BookingPending || b.BookingSource != models.BookingSourceFrontend {
		t.Errorf("status/source = %s/%s", b.BookingStatus, b.BookingSource)
	}
	if b.PaymentStatus != models.PaymentPending {
		t.Errorf("paymentStatus = %q", b.PaymentStatus)
	}
	if b.RemainingAmount != 6000 {
		t.Errorf("remaining = %v", b.RemainingAmount)
	}
}

func TestBookingBuilderOverrides(t *testing.T) {
	b := NewBookingBuilder().
		WithStatus(models.BookingConfirmed).
		WithSource(models.BookingSourceAdmin).
		WithPayment("cash", models.PaymentFullPaid).
		WithNotes("walk-in").
		Build()
	if b.BookingStatus != models.BookingConfirmed || b.BookingSource != models.BookingSourceAdmin ||
		b.PaymentStatus != models.PaymentFullPaid || b.Notes != "walk-in" {
		t.Errorf("booking = %+v", b)
	}
}
