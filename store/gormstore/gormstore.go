package gormstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayhub/models"
	"stayhub/store"
)

// Store implements store.Store on a gorm connection (postgres in production).
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate tạo hoặc cập nhật các bảng
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Property{},
		&models.Booking{},
		&models.Student{},
		&models.Vendor{},
		&models.Admin{},
		&models.Payment{},
		&models.Referral{},
		&models.Counter{},
	)
}

func (s *Store) Properties() store.PropertyStore { return &propertyStore{db: s.db} }
func (s *Store) Bookings() store.BookingStore    { return &bookingStore{db: s.db} }
func (s *Store) Students() store.StudentStore    { return &studentStore{db: s.db} }
func (s *Store) Vendors() store.VendorStore      { return &vendorStore{db: s.db} }
func (s *Store) Admins() store.AdminStore        { return &adminStore{db: s.db} }
func (s *Store) Payments() store.PaymentStore    { return &paymentStore{db: s.db} }
func (s *Store) Referrals() store.ReferralStore  { return &referralStore{db: s.db} }
func (s *Store) Counters() store.CounterStore    { return &counterStore{db: s.db} }

func (s *Store) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// translate maps gorm errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return store.ErrDuplicate
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "SQLSTATE 23505") || strings.Contains(err.Error(), "duplicate key")
}

func paginate(q *gorm.DB, page, limit int) *gorm.DB {
	if limit <= 0 {
		return q
	}
	if page < 1 {
		page = 1
	}
	return q.Offset((page - 1) * limit).Limit(limit)
}

type counterStore struct {
	db *gorm.DB
}

// Next increments the named counter under a row lock.
func (s *counterStore) Next(ctx context.Context, name string) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter := models.Counter{Name: name}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&counter, "name = ?", name).Error; err != nil {
			return err
		}
		counter.Value++
		if err := tx.Model(&models.Counter{}).Where("name = ?", name).Update("value", counter.Value).Error; err != nil {
			return err
		}
		next = counter.Value
		return nil
	})
	return next, translate(err)
}
