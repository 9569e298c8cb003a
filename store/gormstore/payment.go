package gormstore

import (
	"context"

	"gorm.io/gorm"

	"stayhub/models"
	"stayhub/store"
)

type paymentStore struct {
	db *gorm.DB
}

func (s *paymentStore) Create(ctx context.Context, p *models.Payment) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *paymentStore) Get(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *paymentStore) Update(ctx context.Context, p *models.Payment) error {
	return translate(s.db.WithContext(ctx).Save(p).Error)
}

func (s *paymentStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Payment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *paymentStore) ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	var payments []models.Payment
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if studentID != "" {
		q = q.Where("student_id = ?", studentID)
	}
	err := q.Find(&payments).Error
	return payments, err
}

func (s *paymentStore) Balance(ctx context.Context, studentID, excludeID string) (float64, error) {
	q := s.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)", models.PaymentCredit).
		Where("student_id = ?", studentID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var balance float64
	if err := q.Scan(&balance).Error; err != nil {
		return 0, err
	}
	return balance, nil
}
