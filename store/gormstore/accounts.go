package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayhub/models"
	"stayhub/store"
)

type studentStore struct {
	db *gorm.DB
}

func (s *studentStore) Create(ctx context.Context, st *models.Student) error {
	return translate(s.db.WithContext(ctx).Create(st).Error)
}

func (s *studentStore) first(ctx context.Context, query string, arg interface{}) (*models.Student, error) {
	var st models.Student
	if err := s.db.WithContext(ctx).First(&st, query, arg).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

func (s *studentStore) Get(ctx context.Context, id string) (*models.Student, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *studentStore) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return s.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (s *studentStore) GetByPhone(ctx context.Context, phone string) (*models.Student, error) {
	return s.first(ctx, "phone = ?", phone)
}

func (s *studentStore) GetByReferralCode(ctx context.Context, code string) (*models.Student, error) {
	return s.first(ctx, "referral_code = ?", code)
}

func (s *studentStore) GetByGoogleID(ctx context.Context, googleID string) (*models.Student, error) {
	return s.first(ctx, "google_id = ?", googleID)
}

func (s *studentStore) Update(ctx context.Context, st *models.Student) error {
	return translate(s.db.WithContext(ctx).Save(st).Error)
}

func (s *studentStore) AdjustBookings(ctx context.Context, id string, delta int, currentBooking *string) error {
	updates := map[string]interface{}{
		"total_bookings": gorm.Expr("GREATEST(total_bookings + ?, 0)", delta),
	}
	if currentBooking != nil {
		updates["current_booking"] = *currentBooking
	}
	res := s.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *studentStore) Lock(ctx context.Context, id string) error {
	var st models.Student
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&st, "id = ?", id).Error
	return translate(err)
}

type vendorStore struct {
	db *gorm.DB
}

func (s *vendorStore) Create(ctx context.Context, v *models.Vendor) error {
	return translate(s.db.WithContext(ctx).Create(v).Error)
}

func (s *vendorStore) Get(ctx context.Context, id string) (*models.Vendor, error) {
	var v models.Vendor
	if err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (s *vendorStore) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var v models.Vendor
	if err := s.db.WithContext(ctx).First(&v, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (s *vendorStore) List(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&vendors).Error
	return vendors, err
}

type adminStore struct {
	db *gorm.DB
}

func (s *adminStore) Create(ctx context.Context, a *models.Admin) error {
	return translate(s.db.WithContext(ctx).Create(a).Error)
}

func (s *adminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.db.WithContext(ctx).First(&a, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *adminStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&n).Error
	return n, err
}

type referralStore struct {
	db *gorm.DB
}

func (s *referralStore) Create(ctx context.Context, r *models.Referral) error {
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

func (s *referralStore) ListByReferrer(ctx context.Context, referrerID string) ([]models.Referral, error) {
	var refs []models.Referral
	err := s.db.WithContext(ctx).Where("referrer_id = ?", referrerID).Order("created_at DESC").Find(&refs).Error
	return refs, err
}
