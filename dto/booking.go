package dto

import (
	"time"

	"stayhub/models"
)

// CreateBookingRequest is the admin booking body.
type CreateBookingRequest struct {
	Student       string               `json:"student" binding:"required"`
	Property      string               `json:"property" binding:"required"`
	Room          string               `json:"room" binding:"required"`
	Bed           string               `json:"bed" binding:"required"`
	CheckInDate   time.Time            `json:"checkInDate" binding:"required"`
	TotalAmount   float64              `json:"totalAmount" binding:"gte=0"`
	AdvanceAmount float64              `json:"advanceAmount" binding:"gte=0"`
	PaymentMethod string               `json:"paymentMethod"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	BookingStatus models.BookingStatus `json:"bookingStatus" binding:"omitempty,oneof=pending confirmed"`
	Notes         string               `json:"notes"`
}

// FrontendBookingRequest identifies the student by email or phone; the
// account must already exist.
type FrontendBookingRequest struct {
	Name          string               `json:"name"`
	Email         string               `json:"email" binding:"omitempty,email"`
	Phone         string               `json:"phone" binding:"required"`
	Property      string               `json:"property" binding:"required"`
	Room          string               `json:"room" binding:"required"`
	Bed           string               `json:"bed" binding:"required"`
	CheckInDate   time.Time            `json:"checkInDate" binding:"required"`
	TotalAmount   float64              `json:"totalAmount" binding:"gte=0"`
	AdvanceAmount float64              `json:"advanceAmount" binding:"gte=0"`
	PaymentMethod string               `json:"paymentMethod"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	Notes         string               `json:"notes"`
}

// UpdateBookingRequest only touches the fields that are present.
type UpdateBookingRequest struct {
	Property      *string               `json:"property"`
	Room          *string               `json:"room"`
	Bed           *string               `json:"bed"`
	CheckInDate   *time.Time            `json:"checkInDate"`
	TotalAmount   *float64              `json:"totalAmount" binding:"omitempty,gte=0"`
	AdvanceAmount *float64              `json:"advanceAmount" binding:"omitempty,gte=0"`
	PaymentMethod *string               `json:"paymentMethod"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
	BookingStatus *models.BookingStatus `json:"bookingStatus" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes         *string               `json:"notes"`
}

type BookingStatusRequest struct {
	BookingStatus models.BookingStatus `json:"bookingStatus" binding:"required,oneof=confirmed cancelled completed"`
}

// BookingQuery is bound from the listing query string.
type BookingQuery struct {
	PageQuery
	BookingStatus string `form:"bookingStatus"`
	PaymentStatus string `form:"paymentStatus"`
	Student       string `form:"student"`
	Property      string `form:"property"`
}

type StudentSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RoomSummary struct {
	ID          string  `json:"_id"`
	RoomNumber  string  `json:"roomNumber,omitempty"`
	DisplayName string  `json:"displayName"`
	Rent        float64 `json:"rent"`
}

type BedSummary struct {
	ID        string           `json:"_id"`
	BedNumber int              `json:"bedNumber"`
	Status    models.BedStatus `json:"status"`
}

// BookingResponse is a booking with its references populated. A reference
// that no longer resolves is left nil.
type BookingResponse struct {
	models.Booking
	StudentInfo  *StudentSummary  `json:"studentInfo,omitempty"`
	PropertyInfo *PropertySummary `json:"propertyInfo,omitempty"`
	RoomInfo     *RoomSummary     `json:"roomInfo,omitempty"`
	BedInfo      *BedSummary      `json:"bedInfo,omitempty"`
}
