package services

import (
	"context"
	"time"

	"stayhub/commands"
	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services/logger"
	"stayhub/services/notification"
	"stayhub/store"
	"stayhub/validator"
)

type RoomServiceOptions struct {
	Store    store.Store
	Cache    *Cache
	Logger   logger.Logger
	Notifier notification.Service
	Now      func() time.Time
}

// RoomService manages the rooms and beds embedded in a property.
type RoomService struct {
	store    store.Store
	cache    *Cache
	logger   logger.Logger
	notifier notification.Service
	now      func() time.Time
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.NopService{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &RoomService{
		store:    opts.Store,
		cache:    opts.Cache,
		logger:   opts.Logger,
		notifier: opts.Notifier,
		now:      opts.Now,
	}
}

func (s *RoomService) AddRoom(ctx context.Context, propertyID, vendorID string, req dto.RoomRequest) (*models.Room, *models.Property, error) {
	if err := validator.Struct(req); err != nil {
		return nil, nil, err
	}
	var added models.Room
	p, err := mutateProperty(ctx, s.store, propertyID, ownedBy(vendorID), commands.Func(func(p *models.Property) error {
		room, err := p.AddRoom(req.Spec(), s.now())
		if err != nil {
			return err
		}
		added = *room
		return nil
	}))
	if err != nil {
		return nil, nil, err
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	return &added, p, nil
}

// UpdateRoom re-validates the room and resizes its bed list.
func (s *RoomService) UpdateRoom(ctx context.Context, propertyID, vendorID, roomID string, req dto.RoomRequest) (*models.Room, *models.Property, error) {
	if err := validator.Struct(req); err != nil {
		return nil, nil, err
	}
	var updated models.Room
	p, err := mutateProperty(ctx, s.store, propertyID, ownedBy(vendorID), commands.Func(func(p *models.Property) error {
		room, err := p.UpdateRoom(roomID, req.Spec(), s.now())
		if err != nil {
			return err
		}
		updated = *room
		return nil
	}))
	if err != nil {
		return nil, nil, err
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	return &updated, p, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, propertyID, vendorID, roomID string) (*models.Property, error) {
	p, err := mutateProperty(ctx, s.store, propertyID, ownedBy(vendorID), commands.Func(func(p *models.Property) error {
		return p.DeleteRoom(roomID, s.now())
	}))
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	return p, nil
}

func (s *RoomService) ListRooms(ctx context.Context, propertyID, vendorID string) ([]dto.RoomResponse, error) {
	p, err := s.store.Properties().Get(ctx, propertyID)
	if err != nil {
		return nil, storeErr(err, "Property not found")
	}
	if err := ownedBy(vendorID)(p); err != nil {
		return nil, err
	}
	parents := dto.Parents{ID: p.ID, PropertyID: p.PropertyID, Name: p.Name}
	rooms := p.ActiveRooms()
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, dto.RoomResponse{Room: r, Parents: parents})
	}
	return out, nil
}

func (s *RoomService) GetRoom(ctx context.Context, propertyID, vendorID, roomID string) (*dto.RoomResponse, error) {
	p, err := s.store.Properties().Get(ctx, propertyID)
	if err != nil {
		return nil, storeErr(err, "Property not found")
	}
	if err := ownedBy(vendorID)(p); err != nil {
		return nil, err
	}
	room, err := p.ActiveRoom(roomID)
	if err != nil {
		return nil, errors.NotFound("Room not found")
	}
	return &dto.RoomResponse{
		Room:    *room,
		Parents: dto.Parents{ID: p.ID, PropertyID: p.PropertyID, Name: p.Name},
	}, nil
}

// SetBedStatus is the vendor's manual bed switch: maintenance, notice, or
// back to available. Beds held by a booking change through the booking.
func (s *RoomService) SetBedStatus(ctx context.Context, propertyID, vendorID, roomID, bedID string, status models.BedStatus) (*models.Bed, error) {
	switch status {
	case models.BedAvailable, models.BedMaintenance, models.BedNotice:
	default:
		return nil, errors.Validation("status must be available, maintenance or notice")
	}
	var result models.Bed
	_, err := mutateProperty(ctx, s.store, propertyID, ownedBy(vendorID), commands.Func(func(p *models.Property) error {
		if _, err := p.ActiveRoom(roomID); err != nil {
			return err
		}
		_, bed, err := p.Bed(roomID, bedID)
		if err != nil {
			return err
		}
		// notice beds still carry their booking
		if status == models.BedAvailable && bed.BookingID != "" {
			return errors.Validation("Bed is held by a booking; update the booking instead")
		}
		if err := p.TransitionBed(roomID, bedID, status, s.now()); err != nil {
			return err
		}
		_, bed, _ = p.Bed(roomID, bedID)
		result = *bed
		return nil
	}))
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	msg := notification.NewMessageBuilder(notification.BedStatusChanged).
		Bed(propertyID, roomID, bedID).
		Status(string(status)).
		Build()
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Warn("broadcast bed status: %v", err)
	}
	return &result, nil
}
