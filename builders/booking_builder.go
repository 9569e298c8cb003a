package builders

import (
	"time"

	"github.com/google/uuid"

	"stayhub/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo instance mới của BookingBuilder
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{
			BookingStatus: models.BookingPending,
			BookingSource: models.BookingSourceFrontend,
			PaymentStatus: models.PaymentPending,
		},
	}
}

// WithStudent thêm thông tin sinh viên
func (b *BookingBuilder) WithStudent(studentID string) *BookingBuilder {
	b.booking.StudentID = studentID
	return b
}

// WithBed thêm property, phòng và giường
func (b *BookingBuilder) WithBed(propertyID, roomID, bedID string) *BookingBuilder {
	b.booking.PropertyID = propertyID
	b.booking.RoomID = roomID
	b.booking.BedID = bedID
	return b
}

// WithCheckIn thêm ngày nhận phòng
func (b *BookingBuilder) WithCheckIn(checkIn time.Time) *BookingBuilder {
	b.booking.CheckInDate = checkIn
	return b
}

func (b *BookingBuilder) WithAmounts(total, advance float64) *BookingBuilder {
	b.booking.TotalAmount = total
	b.booking.AdvanceAmount = advance
	return b
}

// WithPayment sets method and status; an empty status keeps Pending.
func (b *BookingBuilder) WithPayment(method string, status models.PaymentStatus) *BookingBuilder {
	b.booking.PaymentMethod = method
	if status != "" {
		b.booking.PaymentStatus = status
	}
	return b
}

// WithStatus thêm trạng thái
func (b *BookingBuilder) WithStatus(status models.BookingStatus) *BookingBuilder {
	if status != "" {
		b.booking.BookingStatus = status
	}
	return b
}

func (b *BookingBuilder) WithSource(source models.BookingSource) *BookingBuilder {
	b.booking.BookingSource = source
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.booking.Notes = notes
	return b
}

// Build assigns identifiers and derives remainingAmount.
func (b *BookingBuilder) Build() *models.Booking {
	if b.booking.ID == "" {
		b.booking.ID = uuid.NewString()
	}
	if b.booking.BookingID == "" {
		b.booking.BookingID = models.NewBookingCode()
	}
	b.booking.RecomputeRemaining()
	return b.booking
}
