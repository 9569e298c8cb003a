package models

import "stayhub/errors"

// BookingState định nghĩa các chuyển trạng thái hợp lệ của một booking
type BookingState interface {
	Confirm(b *Booking) error
	Cancel(b *Booking) error
	Complete(b *Booking) error
}

// PendingState trạng thái chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm(b *Booking) error {
	b.BookingStatus = BookingConfirmed
	return nil
}

func (s *PendingState) Cancel(b *Booking) error {
	b.BookingStatus = BookingCancelled
	return nil
}

func (s *PendingState) Complete(b *Booking) error {
	return errors.Validation("Cannot complete a pending booking")
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(b *Booking) error {
	return errors.Validation("Booking already confirmed")
}

func (s *ConfirmedState) Cancel(b *Booking) error {
	b.BookingStatus = BookingCancelled
	return nil
}

func (s *ConfirmedState) Complete(b *Booking) error {
	b.BookingStatus = BookingCompleted
	return nil
}

// CompletedState trạng thái hoàn thành
type CompletedState struct{}

func (s *CompletedState) Confirm(b *Booking) error {
	return errors.Validation("Booking already completed")
}

func (s *CompletedState) Cancel(b *Booking) error {
	return errors.Validation("Cannot cancel a completed booking")
}

func (s *CompletedState) Complete(b *Booking) error {
	return errors.Validation("Booking already completed")
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Confirm(b *Booking) error {
	return errors.Validation("Cannot confirm a cancelled booking")
}

func (s *CancelledState) Cancel(b *Booking) error {
	return errors.Validation("Booking already cancelled")
}

func (s *CancelledState) Complete(b *Booking) error {
	return errors.Validation("Cannot complete a cancelled booking")
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status BookingStatus) BookingState {
	switch status {
	case BookingConfirmed:
		return &ConfirmedState{}
	case BookingCompleted:
		return &CompletedState{}
	case BookingCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}
