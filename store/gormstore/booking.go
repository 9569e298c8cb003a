package gormstore

import (
	"context"

	"gorm.io/gorm"

	"stayhub/models"
	"stayhub/store"
)

type bookingStore struct {
	db *gorm.DB
}

func (s *bookingStore) Create(ctx context.Context, b *models.Booking) error {
	return translate(s.db.WithContext(ctx).Create(b).Error)
}

func (s *bookingStore) Get(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ? OR booking_id = ?", id, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *bookingStore) Update(ctx context.Context, b *models.Booking) error {
	return translate(s.db.WithContext(ctx).Save(b).Error)
}

func (s *bookingStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *bookingStore) filtered(ctx context.Context, f store.BookingFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Booking{})
	if f.StudentID != "" {
		q = q.Where("student_id = ?", f.StudentID)
	}
	if f.ScopeToIDs || len(f.PropertyIDs) > 0 {
		if len(f.PropertyIDs) == 0 {
			return q.Where("1 = 0")
		}
		q = q.Where("property_id IN ?", f.PropertyIDs)
	}
	if f.BookingStatus != "" {
		q = q.Where("booking_status = ?", f.BookingStatus)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.ExcludeStatus != "" {
		q = q.Where("booking_status <> ?", f.ExcludeStatus)
	}
	return q
}

func (s *bookingStore) List(ctx context.Context, f store.BookingFilter) ([]models.Booking, int64, error) {
	q := s.filtered(ctx, f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var bookings []models.Booking
	if err := paginate(q.Order("created_at DESC"), f.Page, f.Limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

type groupCount struct {
	Key   string
	Count int64
}

func (s *bookingStore) Stats(ctx context.Context, f store.BookingFilter) (*models.BookingStats, error) {
	stats := &models.BookingStats{
		ByBookingStatus: map[string]int64{},
		ByPaymentStatus: map[string]int64{},
	}

	var byStatus []groupCount
	if err := s.filtered(ctx, f).
		Select("booking_status AS key, COUNT(*) AS count").
		Group("booking_status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByBookingStatus[row.Key] = row.Count
		stats.Total += row.Count
	}

	var byPayment []groupCount
	if err := s.filtered(ctx, f).
		Select("payment_status AS key, COUNT(*) AS count").
		Group("payment_status").
		Scan(&byPayment).Error; err != nil {
		return nil, err
	}
	for _, row := range byPayment {
		stats.ByPaymentStatus[row.Key] = row.Count
	}

	var sums struct {
		TotalAmount     float64
		AdvanceAmount   float64
		RemainingAmount float64
	}
	if err := s.filtered(ctx, f).
		Select("COALESCE(SUM(total_amount),0) AS total_amount, COALESCE(SUM(advance_amount),0) AS advance_amount, COALESCE(SUM(remaining_amount),0) AS remaining_amount").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	stats.TotalAmount = sums.TotalAmount
	stats.AdvanceAmount = sums.AdvanceAmount
	stats.RemainingAmount = sums.RemainingAmount
	return stats, nil
}
