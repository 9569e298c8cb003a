package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"stayhub/commands"
	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services/logger"
	"stayhub/store"
	"stayhub/validator"
)

type PropertyServiceOptions struct {
	Store    store.Store
	Cache    *Cache
	Logger   logger.Logger
	IDPrefix string
	IDOffset int64
	Now      func() time.Time
}

type PropertyService struct {
	store    store.Store
	cache    *Cache
	logger   logger.Logger
	idPrefix string
	idOffset int64
	now      func() time.Time
}

func NewPropertyService(opts PropertyServiceOptions) *PropertyService {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IDPrefix == "" {
		opts.IDPrefix = "PG"
	}
	return &PropertyService{
		store:    opts.Store,
		cache:    opts.Cache,
		logger:   opts.Logger,
		idPrefix: opts.IDPrefix,
		idOffset: opts.IDOffset,
		now:      opts.Now,
	}
}

// PublicPage is what the public listing caches.
type PublicPage struct {
	Items []models.Property `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// Create assigns the next sequential propertyId and stores a draft with zero roll-ups.
func (s *PropertyService) Create(ctx context.Context, vendorID string, req dto.PropertyRequest) (*models.Property, error) {
	req = normalizePropertyRequest(req)
	if err := validatePropertyRequest(req); err != nil {
		return nil, err
	}
	if vendorID == "" {
		vendorID = req.VendorID
	}
	if vendorID == "" {
		return nil, errors.Validation("vendorId is required")
	}

	seq, err := s.store.Counters().Next(ctx, constants.PropertySequence)
	if err != nil {
		return nil, errors.Internal("Failed to allocate property id", err)
	}

	p := &models.Property{
		ID:         uuid.NewString(),
		PropertyID: fmt.Sprintf("%s%d", s.idPrefix, s.idOffset+seq),
		VendorID:   vendorID,
		Status:     models.PropertyStatusDraft,
		IsActive:   true,
		Rooms:      []models.Room{},
	}
	applyPropertyRequest(p, req)
	p.Recompute()

	if err := s.store.Properties().Create(ctx, p); err != nil {
		return nil, storeErr(err, "Property not found")
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	s.logger.Info("property %s created for vendor %s", p.PropertyID, vendorID)
	return p, nil
}

// Update is the vendor edit. Any edit sends the listing back to draft.
func (s *PropertyService) Update(ctx context.Context, id, vendorID string, req dto.PropertyRequest) (*models.Property, error) {
	req = normalizePropertyRequest(req)
	if err := validatePropertyRequest(req); err != nil {
		return nil, err
	}
	p, err := mutateProperty(ctx, s.store, id, ownedBy(vendorID), commands.Func(func(p *models.Property) error {
		applyPropertyRequest(p, req)
		p.Status = models.PropertyStatusDraft
		return nil
	}))
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	return p, nil
}

// AdminUpdate keeps the current status unless the request sets one.
func (s *PropertyService) AdminUpdate(ctx context.Context, id string, req dto.AdminPropertyRequest) (*models.Property, error) {
	req.PropertyRequest = normalizePropertyRequest(req.PropertyRequest)
	if err := validatePropertyRequest(req.PropertyRequest); err != nil {
		return nil, err
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, errors.Validation("status must be draft or public")
	}
	p, err := mutateProperty(ctx, s.store, id, ownedBy(""), commands.Func(func(p *models.Property) error {
		applyPropertyRequest(p, req.PropertyRequest)
		if req.VendorID != "" {
			p.VendorID = req.VendorID
		}
		if req.Status != "" {
			p.Status = req.Status
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	return p, nil
}

func (s *PropertyService) SetStatus(ctx context.Context, id string, status models.PropertyStatus) (*models.Property, error) {
	if !status.Valid() {
		return nil, errors.Validation("status must be draft or public")
	}
	p, err := mutateProperty(ctx, s.store, id, ownedBy(""), commands.Func(func(p *models.Property) error {
		p.Status = status
		return nil
	}))
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	return p, nil
}

// SoftDelete hides the property. Refused while any bed is occupied.
func (s *PropertyService) SoftDelete(ctx context.Context, id, vendorID string) error {
	_, err := mutateProperty(ctx, s.store, id, ownedBy(vendorID), commands.Func(func(p *models.Property) error {
		p.Recompute()
		if p.OccupiedBeds > 0 {
			return errors.ErrPropertyHasOccupied
		}
		p.IsActive = false
		return nil
	}))
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	s.logger.Info("property %s deactivated", id)
	return nil
}

// Get returns one property for a vendor (scoped) or an admin (vendorID empty).
func (s *PropertyService) Get(ctx context.Context, id, vendorID string) (*models.Property, error) {
	p, err := s.store.Properties().Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Property not found")
	}
	if vendorID != "" {
		if err := ownedBy(vendorID)(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *PropertyService) List(ctx context.Context, vendorID string, q dto.PropertyQuery) ([]models.Property, int, int, int64, error) {
	page, limit := store.Normalize(q.Page, q.Limit, constants.DefaultLimit, constants.MaxLimit)
	f := store.PropertyFilter{
		VendorID: vendorID,
		City:     strings.TrimSpace(q.City),
		Type:     models.PropertyType(q.Type),
		Gender:   q.Gender,
		Status:   models.PropertyStatus(q.Status),
		Page:     page,
		Limit:    limit,
	}
	if vendorID == "" && q.Vendor != "" {
		f.VendorID = q.Vendor
	}
	props, total, err := s.store.Properties().List(ctx, f)
	if err != nil {
		return nil, 0, 0, 0, errors.Internal("Failed to list properties", err)
	}
	return props, page, limit, total, nil
}

// ListPublic returns published, active listings, served from Redis when possible.
func (s *PropertyService) ListPublic(ctx context.Context, q dto.PropertyQuery) (*PublicPage, error) {
	page, limit := store.Normalize(q.Page, q.Limit, constants.DefaultLimit, constants.MaxLimit)
	f := store.PropertyFilter{
		Status: models.PropertyStatusPublic,
		City:   strings.TrimSpace(q.City),
		Type:   models.PropertyType(q.Type),
		Gender: q.Gender,
		Page:   page,
		Limit:  limit,
	}
	key := KeyFor(constants.PublicPropertiesCachePrefix+"public:", f)

	var cached PublicPage
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("cache read %s: %v", key, err)
	} else if hit {
		return &cached, nil
	}

	props, total, err := s.store.Properties().List(ctx, f)
	if err != nil {
		return nil, errors.Internal("Failed to list properties", err)
	}
	result := &PublicPage{Items: props, Total: total, Page: page, Limit: limit}
	if err := s.cache.Set(ctx, key, result, constants.PublicPropertiesCacheTTL); err != nil {
		s.logger.Warn("cache write %s: %v", key, err)
	}
	return result, nil
}

// GetPublic resolves an id or a slug to a published listing.
func (s *PropertyService) GetPublic(ctx context.Context, idOrSlug string) (*models.Property, error) {
	key := constants.PublicPropertiesCachePrefix + "detail:" + idOrSlug
	var cached models.Property
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	p, err := s.store.Properties().Get(ctx, idOrSlug)
	if err != nil {
		p, err = s.store.Properties().GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, storeErr(err, "Property not found")
	}
	if !p.IsActive || p.Status != models.PropertyStatusPublic {
		return nil, errors.NotFound("Property not found")
	}
	if err := s.cache.Set(ctx, key, p, constants.PublicPropertiesCacheTTL); err != nil {
		s.logger.Warn("cache write %s: %v", key, err)
	}
	return p, nil
}

// RecomputeAll re-derives roll-ups for every active property and saves the
// ones that drifted. It returns how many were corrected.
func (s *PropertyService) RecomputeAll(ctx context.Context) (int, error) {
	props, _, err := s.store.Properties().List(ctx, store.PropertyFilter{})
	if err != nil {
		return 0, errors.Internal("Failed to list properties", err)
	}
	fixed := 0
	for i := range props {
		fresh := props[i].Clone()
		fresh.Recompute()
		if sameRollups(&props[i], fresh) {
			continue
		}
		if _, err := mutateProperty(ctx, s.store, props[i].ID, nil, commands.Func(func(p *models.Property) error {
			p.Recompute()
			return nil
		})); err != nil {
			s.logger.Error("recompute %s: %v", props[i].ID, err)
			continue
		}
		fixed++
	}
	return fixed, nil
}

// StaleHolds lists onbook beds whose hold started before now-olderThan.
func (s *PropertyService) StaleHolds(ctx context.Context, olderThan time.Duration) ([]models.HoldReport, error) {
	props, _, err := s.store.Properties().List(ctx, store.PropertyFilter{})
	if err != nil {
		return nil, errors.Internal("Failed to list properties", err)
	}
	cutoff := s.now().Add(-olderThan)
	var holds []models.HoldReport
	for _, p := range props {
		for _, room := range p.ActiveRooms() {
			for _, bed := range room.Beds {
				if bed.Status != models.BedOnBook || bed.BookingDate == nil || !bed.BookingDate.Before(cutoff) {
					continue
				}
				holds = append(holds, models.HoldReport{
					PropertyID:   p.ID,
					PropertyName: p.Name,
					RoomID:       room.ID,
					BedID:        bed.ID,
					BedNumber:    bed.BedNumber,
					BookingID:    bed.BookingID,
					HeldSince:    *bed.BookingDate,
				})
			}
		}
	}
	return holds, nil
}

func sameRollups(a, b *models.Property) bool {
	return a.TotalRooms == b.TotalRooms &&
		a.TotalBeds == b.TotalBeds &&
		a.OccupiedBeds == b.OccupiedBeds &&
		a.AvailableBeds == b.AvailableBeds &&
		a.OnBookBeds == b.OnBookBeds &&
		a.NoticeBeds == b.NoticeBeds &&
		a.MaintenanceBeds == b.MaintenanceBeds &&
		a.MonthlyRevenue == b.MonthlyRevenue
}

// normalizePropertyRequest trims strings and drops empty list entries.
func normalizePropertyRequest(req dto.PropertyRequest) dto.PropertyRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Gender = strings.TrimSpace(req.Gender)
	req.Address = strings.TrimSpace(req.Address)
	req.Area = strings.TrimSpace(req.Area)
	req.City = strings.TrimSpace(req.City)
	req.State = strings.TrimSpace(req.State)
	req.Pincode = strings.TrimSpace(req.Pincode)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Description = strings.TrimSpace(req.Description)
	req.VendorID = strings.TrimSpace(req.VendorID)
	req.Amenities = compact(req.Amenities)
	req.Images = compact(req.Images)
	req.Rules = normalizeRules(req.Rules)
	return req
}

func validatePropertyRequest(req dto.PropertyRequest) error {
	if err := validator.Struct(req); err != nil {
		return err
	}
	if err := validator.ValidatePhone(req.ContactNumber); err != nil {
		return err
	}
	return validator.ValidatePincode(req.Pincode)
}

func applyPropertyRequest(p *models.Property, req dto.PropertyRequest) {
	if p.Name != req.Name || p.Slug == "" {
		p.Slug = models.Slugify(req.Name, p.PropertyID)
	}
	p.Name = req.Name
	p.Type = req.Type
	p.Gender = req.Gender
	p.Address = req.Address
	p.Area = req.Area
	p.City = req.City
	p.State = req.State
	p.Pincode = req.Pincode
	p.ContactNumber = req.ContactNumber
	p.Email = req.Email
	p.Description = req.Description
	p.Amenities = pq.StringArray(req.Amenities)
	p.Images = req.Images
	p.Rules = nil
	if len(req.Rules) > 0 {
		p.Rules = datatypes.JSON(req.Rules)
	}
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// normalizeRules drops null, empty objects and empty arrays.
func normalizeRules(raw json.RawMessage) json.RawMessage {
	trimmed := strings.TrimSpace(string(raw))
	switch trimmed {
	case "", "null", "{}", "[]", `""`:
		return nil
	}
	if !json.Valid([]byte(trimmed)) {
		return nil
	}
	return json.RawMessage(trimmed)
}
