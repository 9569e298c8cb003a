package models

import "time"

type PaymentType string

const (
	PaymentCredit PaymentType = "credit"
	PaymentDebit  PaymentType = "debit"
)

func (t PaymentType) Valid() bool {
	return t == PaymentCredit || t == PaymentDebit
}

// Payment is one ledger entry of a student's wallet.
type Payment struct {
	ID        string      `json:"_id" gorm:"primaryKey;size:36"`
	StudentID string      `json:"student" gorm:"index;size:36"`
	Type      PaymentType `json:"type" gorm:"size:8;index"`
	Amount    float64     `json:"amount"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Counter backs sequential human readable ids.
type Counter struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value int64
}

// HoldReport describes a bed left on hold by a pending frontend request.
type HoldReport struct {
	PropertyID   string    `json:"propertyId"`
	PropertyName string    `json:"propertyName"`
	RoomID       string    `json:"roomId"`
	BedID        string    `json:"bedId"`
	BedNumber    int       `json:"bedNumber"`
	BookingID    string    `json:"bookingId"`
	HeldSince    time.Time `json:"heldSince"`
}
