package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type BookingSource string

const (
	BookingSourceFrontend BookingSource = "frontend"
	BookingSourceAdmin    BookingSource = "admin"
)

type Booking struct {
	ID              string        `json:"_id" gorm:"primaryKey;size:36"`
	BookingID       string        `json:"bookingId" gorm:"uniqueIndex;size:16"`
	StudentID       string        `json:"student" gorm:"index;size:36"`
	PropertyID      string        `json:"property" gorm:"index;size:36"`
	RoomID          string        `json:"room" gorm:"size:36"`
	BedID           string        `json:"bed" gorm:"size:36"`
	CheckInDate     time.Time     `json:"checkInDate"`
	TotalAmount     float64       `json:"totalAmount"`
	AdvanceAmount   float64       `json:"advanceAmount"`
	RemainingAmount float64       `json:"remainingAmount"`
	PaymentMethod   string        `json:"paymentMethod" gorm:"size:32"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" gorm:"size:32;index"`
	BookingStatus   BookingStatus `json:"bookingStatus" gorm:"size:16;index"`
	BookingSource   BookingSource `json:"bookingSource" gorm:"size:16"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeSave giữ remainingAmount = totalAmount - advanceAmount
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	b.RecomputeRemaining()
	return nil
}

func (b *Booking) RecomputeRemaining() {
	b.RemainingAmount = b.TotalAmount - b.AdvanceAmount
}

// NewBookingCode returns a short public booking reference such as BK1A2B3C4D.
func NewBookingCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK" + strings.ToUpper(raw[:8])
}

// BookingStats is the listing summary shown on dashboards.
type BookingStats struct {
	Total           int64            `json:"total"`
	ByBookingStatus map[string]int64 `json:"byBookingStatus"`
	ByPaymentStatus map[string]int64 `json:"byPaymentStatus"`
	TotalAmount     float64          `json:"totalAmount"`
	AdvanceAmount   float64          `json:"advanceAmount"`
	RemainingAmount float64          `json:"remainingAmount"`
}
