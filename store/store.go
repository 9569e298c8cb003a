// Package store defines the persistence ports used by the services. The
// gormstore package implements them on postgres; memstore keeps everything
// in process for local runs and tests.
package store

import (
	"context"
	"errors"

	"stayhub/models"
)

var (
	ErrNotFound        = errors.New("store: record not found")
	ErrVersionConflict = errors.New("store: version conflict")
	ErrDuplicate       = errors.New("store: duplicate key")
)

type PropertyFilter struct {
	VendorID        string
	Status          models.PropertyStatus
	City            string
	Type            models.PropertyType
	Gender          string
	IncludeInactive bool
	Page            int
	Limit           int
}

type BookingFilter struct {
	StudentID     string
	PropertyIDs   []string
	ScopeToIDs    bool // when set, an empty PropertyIDs matches nothing
	BookingStatus models.BookingStatus
	PaymentStatus models.PaymentStatus
	ExcludeStatus models.BookingStatus
	Page          int
	Limit         int
}

type PropertyStore interface {
	Create(ctx context.Context, p *models.Property) error
	Get(ctx context.Context, id string) (*models.Property, error)
	GetBySlug(ctx context.Context, slug string) (*models.Property, error)
	List(ctx context.Context, f PropertyFilter) ([]models.Property, int64, error)
	IDsByVendor(ctx context.Context, vendorID string) ([]string, error)
	// Save writes p only if the stored version still equals p.Version and
	// bumps it; otherwise it returns ErrVersionConflict.
	Save(ctx context.Context, p *models.Property) error
}

type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
	Get(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f BookingFilter) ([]models.Booking, int64, error)
	Stats(ctx context.Context, f BookingFilter) (*models.BookingStats, error)
}

type StudentStore interface {
	Create(ctx context.Context, s *models.Student) error
	Get(ctx context.Context, id string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByPhone(ctx context.Context, phone string) (*models.Student, error)
	GetByReferralCode(ctx context.Context, code string) (*models.Student, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.Student, error)
	Update(ctx context.Context, s *models.Student) error
	// AdjustBookings adds delta to totalBookings, never below zero, and sets
	// currentBooking when it is non-nil.
	AdjustBookings(ctx context.Context, id string, delta int, currentBooking *string) error
	// Lock serializes ledger writes for one student inside a transaction.
	Lock(ctx context.Context, id string) error
}

type VendorStore interface {
	Create(ctx context.Context, v *models.Vendor) error
	Get(ctx context.Context, id string) (*models.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
}

type AdminStore interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id string) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error)
	// Balance is sum(credit) - sum(debit), skipping excludeID when set.
	Balance(ctx context.Context, studentID, excludeID string) (float64, error)
}

type ReferralStore interface {
	Create(ctx context.Context, r *models.Referral) error
	ListByReferrer(ctx context.Context, referrerID string) ([]models.Referral, error)
}

type CounterStore interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Store groups the repositories behind one transaction boundary.
type Store interface {
	Properties() PropertyStore
	Bookings() BookingStore
	Students() StudentStore
	Vendors() VendorStore
	Admins() AdminStore
	Payments() PaymentStore
	Referrals() ReferralStore
	Counters() CounterStore
	// Transaction runs fn against a store bound to one transaction; an
	// error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Normalize clamps paging to sane defaults.
func Normalize(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
