package gormstore

import (
	"context"

	"gorm.io/gorm"

	"stayhub/models"
	"stayhub/store"
)

type propertyStore struct {
	db *gorm.DB
}

func (s *propertyStore) Create(ctx context.Context, p *models.Property) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *propertyStore) Get(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *propertyStore) GetBySlug(ctx context.Context, slug string) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).First(&p, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *propertyStore) List(ctx context.Context, f store.PropertyFilter) ([]models.Property, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Property{})
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.VendorID != "" {
		q = q.Where("vendor_id = ?", f.VendorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var props []models.Property
	if err := paginate(q.Order("created_at DESC"), f.Page, f.Limit).Find(&props).Error; err != nil {
		return nil, 0, err
	}
	return props, total, nil
}

func (s *propertyStore) IDsByVendor(ctx context.Context, vendorID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Property{}).
		Where("vendor_id = ?", vendorID).
		Pluck("id", &ids).Error
	return ids, err
}

// Save is a compare-and-swap on the version column. The BeforeSave hook
// recomputes the roll-up counters on the way in.
func (s *propertyStore) Save(ctx context.Context, p *models.Property) error {
	expected := p.Version
	p.Version = expected + 1
	res := s.db.WithContext(ctx).
		Model(p).
		Where("version = ?", expected).
		Select("*").
		Omit("created_at").
		Updates(p)
	if res.Error != nil {
		p.Version = expected
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		p.Version = expected
		return store.ErrVersionConflict
	}
	return nil
}
