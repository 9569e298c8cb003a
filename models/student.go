package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID             string    `json:"_id" gorm:"primaryKey;size:36"`
	Name           string    `json:"name"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Phone          string    `json:"phone" gorm:"size:15;index:idx_students_phone,unique,where:phone <> ''"`
	City           string    `json:"city,omitempty"`
	Password       string    `json:"-"`
	GoogleID       string    `json:"-" gorm:"index"`
	ReferralCode   string    `json:"referralCode" gorm:"uniqueIndex;size:16"`
	TotalBookings  int       `json:"totalBookings" gorm:"default:0"`
	CurrentBooking string    `json:"currentBooking,omitempty"`
	IsActive       bool      `json:"isActive" gorm:"default:true"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// NewReferralCode returns an 8 character uppercase code.
func NewReferralCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

type Vendor struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Phone     string    `json:"phone" gorm:"size:15"`
	Password  string    `json:"-"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

type Admin struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Referral links the student who shared a code to the student who used it.
type Referral struct {
	ID         string    `json:"_id" gorm:"primaryKey;size:36"`
	ReferrerID string    `json:"referrerId" gorm:"index;size:36"`
	ReferredID string    `json:"referredId" gorm:"uniqueIndex;size:36"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
