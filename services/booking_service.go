package services

import (
	"context"
	"strings"
	"time"

	"stayhub/builders"
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

type BookingServiceOptions struct {
	Store    store.Store
	Cache    *Cache
	Logger   logger.Logger
	Notifier notification.Service
	Now      func() time.Time
}

// BookingService keeps bookings and the beds they hold in step. Every
// booking write and its bed change run in one store transaction.
type BookingService struct {
	store    store.Store
	cache    *Cache
	logger   logger.Logger
	notifier notification.Service
	now      func() time.Time
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.NopService{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &BookingService{
		store:    opts.Store,
		cache:    opts.Cache,
		logger:   opts.Logger,
		notifier: opts.Notifier,
		now:      opts.Now,
	}
}

// holdsBed reports whether a booking in this status owns its bed.
func holdsBed(status models.BookingStatus) bool {
	return status == models.BookingPending || status == models.BookingConfirmed
}

func bedStatusFor(status models.BookingStatus) models.BedStatus {
	if status == models.BookingPending {
		return models.BedOnBook
	}
	return models.BedOccupied
}

func (s *BookingService) occupant(b *models.Booking, st *models.Student) models.Occupant {
	occ := models.Occupant{
		BookingID: b.ID,
		CheckIn:   b.CheckInDate,
		BookedAt:  s.now(),
	}
	if st != nil {
		occ.Name = st.Name
		occ.Email = st.Email
		occ.Phone = st.Phone
	}
	return occ
}

// Create is the admin path: the bed goes straight to occupied unless the
// booking is explicitly created as pending.
func (s *BookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	status := req.BookingStatus
	if status == "" {
		status = models.BookingConfirmed
	}

	var booking *models.Booking
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		student, err := tx.Students().Get(ctx, req.Student)
		if err != nil {
			return storeErr(err, "Student not found")
		}
		booking = builders.NewBookingBuilder().
			WithStudent(student.ID).
			WithBed(req.Property, req.Room, req.Bed).
			WithCheckIn(req.CheckInDate).
			WithAmounts(req.TotalAmount, req.AdvanceAmount).
			WithPayment(req.PaymentMethod, req.PaymentStatus).
			WithStatus(status).
			WithSource(models.BookingSourceAdmin).
			WithNotes(req.Notes).
			Build()
		return s.claimAndStore(ctx, tx, booking, student)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, notification.BookingCreated, booking)
	return s.populate(ctx, booking)
}

// CreateFrontend is the student request: the student must already have an
// account, and the bed is only held (onbook) until the booking is confirmed.
func (s *BookingService) CreateFrontend(ctx context.Context, req dto.FrontendBookingRequest) (*dto.BookingResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if err := validator.ValidatePhone(req.Phone); err != nil {
		return nil, err
	}

	var booking *models.Booking
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		student, err := s.findStudent(ctx, tx, req.Email, req.Phone)
		if err != nil {
			return err
		}
		// tên trên form chỉ dùng cho bed khi account chưa có tên
		if student.Name == "" {
			student.Name = strings.TrimSpace(req.Name)
		}
		booking = builders.NewBookingBuilder().
			WithStudent(student.ID).
			WithBed(req.Property, req.Room, req.Bed).
			WithCheckIn(req.CheckInDate).
			WithAmounts(req.TotalAmount, req.AdvanceAmount).
			WithPayment(req.PaymentMethod, req.PaymentStatus).
			WithStatus(models.BookingPending).
			WithSource(models.BookingSourceFrontend).
			WithNotes(req.Notes).
			Build()
		return s.claimAndStore(ctx, tx, booking, student)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, notification.BookingCreated, booking)
	return s.populate(ctx, booking)
}

func (s *BookingService) findStudent(ctx context.Context, tx store.Store, email, phone string) (*models.Student, error) {
	if email != "" {
		if st, err := tx.Students().GetByEmail(ctx, email); err == nil {
			return st, nil
		} else if !isStoreNotFound(err) {
			return nil, storeErr(err, "Student not found")
		}
	}
	st, err := tx.Students().GetByPhone(ctx, phone)
	if err != nil {
		if isStoreNotFound(err) {
			return nil, errors.ErrPleaseLogin
		}
		return nil, storeErr(err, "Student not found")
	}
	return st, nil
}

// claimAndStore claims the bed, persists the booking and bumps the
// student's counters, all inside tx.
func (s *BookingService) claimAndStore(ctx context.Context, tx store.Store, b *models.Booking, st *models.Student) error {
	claim := commands.NewClaimBedCommand(b.RoomID, b.BedID, bedStatusFor(b.BookingStatus), s.occupant(b, st))
	prop, err := mutateProperty(ctx, tx, b.PropertyID, activeProperty, claim)
	if err != nil {
		return err
	}
	if err := tx.Bookings().Create(ctx, b); err != nil {
		return storeErr(err, "Booking not found")
	}
	name := prop.Name
	if err := tx.Students().AdjustBookings(ctx, st.ID, 1, &name); err != nil {
		return storeErr(err, "Student not found")
	}
	return nil
}

// Update applies an admin patch. A move releases the old bed before the
// new one is claimed; leaving pending/confirmed releases the bed.
func (s *BookingService) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	var updated *models.Booking
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		b, err := tx.Bookings().Get(ctx, id)
		if err != nil {
			return storeErr(err, "Booking not found")
		}
		old := *b

		next := *b
		if req.Property != nil && *req.Property != "" {
			next.PropertyID = *req.Property
		}
		if req.Room != nil && *req.Room != "" {
			next.RoomID = *req.Room
		}
		if req.Bed != nil && *req.Bed != "" {
			next.BedID = *req.Bed
		}
		if req.CheckInDate != nil {
			next.CheckInDate = *req.CheckInDate
		}
		if req.TotalAmount != nil {
			next.TotalAmount = *req.TotalAmount
		}
		if req.AdvanceAmount != nil {
			next.AdvanceAmount = *req.AdvanceAmount
		}
		if req.PaymentMethod != nil {
			next.PaymentMethod = *req.PaymentMethod
		}
		if req.PaymentStatus != nil && *req.PaymentStatus != "" {
			next.PaymentStatus = *req.PaymentStatus
		}
		if req.Notes != nil {
			next.Notes = *req.Notes
		}
		if req.BookingStatus != nil && *req.BookingStatus != old.BookingStatus {
			if err := applyTransition(&next, *req.BookingStatus); err != nil {
				return err
			}
		}

		moved := next.PropertyID != old.PropertyID || next.RoomID != old.RoomID || next.BedID != old.BedID
		if err := s.reconcileBed(ctx, tx, &old, &next, moved); err != nil {
			return err
		}

		next.RecomputeRemaining()
		if err := tx.Bookings().Update(ctx, &next); err != nil {
			return storeErr(err, "Booking not found")
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	kind := notification.BookingUpdated
	if updated.BookingStatus == models.BookingCancelled {
		kind = notification.BookingCancelled
	}
	s.publish(ctx, kind, updated)
	return s.populate(ctx, updated)
}

// reconcileBed brings inventory in line with a booking going from old to next.
func (s *BookingService) reconcileBed(ctx context.Context, tx store.Store, old, next *models.Booking, moved bool) error {
	wasHolding := holdsBed(old.BookingStatus)
	willHold := holdsBed(next.BookingStatus)

	switch {
	case wasHolding && !willHold:
		if err := s.releaseBed(ctx, tx, old); err != nil {
			return err
		}
		if next.BookingStatus == models.BookingCancelled {
			if err := tx.Students().AdjustBookings(ctx, old.StudentID, -1, nil); err != nil && !isStoreNotFound(err) {
				return storeErr(err, "Student not found")
			}
		}
		return nil

	case wasHolding && moved:
		student, err := tx.Students().Get(ctx, old.StudentID)
		if err != nil && !isStoreNotFound(err) {
			return storeErr(err, "Student not found")
		}
		if err != nil {
			student = nil
		}
		release := commands.NewReleaseBedCommand(old.RoomID, old.BedID, old.ID)
		claim := commands.NewClaimBedCommand(next.RoomID, next.BedID, bedStatusFor(next.BookingStatus), s.occupant(next, student))

		if next.PropertyID == old.PropertyID {
			_, err := mutateProperty(ctx, tx, next.PropertyID, activeProperty, commands.Sequence{release, claim})
			return err
		}
		if _, err := mutateProperty(ctx, tx, old.PropertyID, nil, release); err != nil && !isNotFound(err) {
			return err
		}
		prop, err := mutateProperty(ctx, tx, next.PropertyID, activeProperty, claim)
		if err != nil {
			return err
		}
		name := prop.Name
		if err := tx.Students().AdjustBookings(ctx, old.StudentID, 0, &name); err != nil && !isStoreNotFound(err) {
			return storeErr(err, "Student not found")
		}
		return nil

	case wasHolding:
		var seq commands.Sequence
		if !next.CheckInDate.Equal(old.CheckInDate) {
			seq = append(seq, &commands.UpdateCheckInCommand{
				RoomID: next.RoomID, BedID: next.BedID, BookingID: next.ID, CheckIn: next.CheckInDate,
			})
		}
		if old.BookingStatus == models.BookingPending && next.BookingStatus == models.BookingConfirmed {
			seq = append(seq, confirmBed(next, s.now()))
		}
		if len(seq) == 0 {
			return nil
		}
		_, err := mutateProperty(ctx, tx, next.PropertyID, nil, seq)
		return err
	}
	return nil
}

// confirmBed turns the booking's onbook hold into an occupied bed and
// leaves any other state alone.
func confirmBed(b *models.Booking, at time.Time) *commands.TransitionBedCommand {
	cmd := commands.NewTransitionBedCommand(b.RoomID, b.BedID, models.BedOccupied, at)
	cmd.Skip = []models.BedStatus{models.BedAvailable, models.BedOccupied, models.BedNotice, models.BedMaintenance}
	return cmd
}

// releaseBed frees the booking's bed if it still carries this booking.
// A property that no longer exists is not an error.
func (s *BookingService) releaseBed(ctx context.Context, tx store.Store, b *models.Booking, onlyIf ...models.BedStatus) error {
	release := commands.NewReleaseBedCommand(b.RoomID, b.BedID, b.ID, onlyIf...)
	_, err := mutateProperty(ctx, tx, b.PropertyID, nil, release)
	if err != nil && isNotFound(err) {
		s.logger.Warn("booking %s: bed %s/%s not found while releasing", b.BookingID, b.RoomID, b.BedID)
		return nil
	}
	return err
}

// applyTransition runs the booking state machine.
func applyTransition(b *models.Booking, to models.BookingStatus) error {
	state := models.GetBookingState(b.BookingStatus)
	switch to {
	case models.BookingConfirmed:
		return state.Confirm(b)
	case models.BookingCancelled:
		return state.Cancel(b)
	case models.BookingCompleted:
		return state.Complete(b)
	case models.BookingPending:
		return errors.Validation("A booking cannot be moved back to pending")
	default:
		return errors.Validation("Invalid booking status")
	}
}

// Cancel is the student's self-service cancel. Only pending bookings can be
// cancelled, and only an onbook bed is released by it.
func (s *BookingService) Cancel(ctx context.Context, id, studentID string) (*dto.BookingResponse, error) {
	var cancelled *models.Booking
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		b, err := tx.Bookings().Get(ctx, id)
		if err != nil {
			return storeErr(err, "Booking not found")
		}
		if b.StudentID != studentID {
			return errors.NotFound("Booking not found")
		}
		if b.BookingStatus != models.BookingPending {
			return errors.ErrOnlyPendingCancel
		}
		if err := applyTransition(b, models.BookingCancelled); err != nil {
			return err
		}
		if err := s.releaseBed(ctx, tx, b, models.BedOnBook); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return storeErr(err, "Booking not found")
		}
		if err := tx.Students().AdjustBookings(ctx, b.StudentID, -1, nil); err != nil && !isStoreNotFound(err) {
			return storeErr(err, "Student not found")
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, notification.BookingCancelled, cancelled)
	return s.populate(ctx, cancelled)
}

// Delete removes a booking and frees its bed whatever the bed's state.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	var deleted *models.Booking
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		b, err := tx.Bookings().Get(ctx, id)
		if err != nil {
			return storeErr(err, "Booking not found")
		}
		if err := s.releaseBed(ctx, tx, b); err != nil {
			return err
		}
		if err := tx.Bookings().Delete(ctx, b.ID); err != nil {
			return storeErr(err, "Booking not found")
		}
		if b.BookingStatus != models.BookingCancelled {
			if err := tx.Students().AdjustBookings(ctx, b.StudentID, -1, nil); err != nil && !isStoreNotFound(err) {
				return storeErr(err, "Student not found")
			}
		}
		deleted = b
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(ctx, notification.BookingDeleted, deleted)
	return nil
}

// UpdateStatus is the vendor action on a booking of one of their properties.
func (s *BookingService) UpdateStatus(ctx context.Context, id, vendorID string, to models.BookingStatus) (*dto.BookingResponse, error) {
	var updated *models.Booking
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		b, err := tx.Bookings().Get(ctx, id)
		if err != nil {
			return storeErr(err, "Booking not found")
		}
		if vendorID != "" {
			p, err := tx.Properties().Get(ctx, b.PropertyID)
			if err != nil || p.VendorID != vendorID {
				return errors.NotFound("Booking not found")
			}
		}
		old := *b
		if err := applyTransition(b, to); err != nil {
			return err
		}
		if err := s.reconcileBed(ctx, tx, &old, b, false); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return storeErr(err, "Booking not found")
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, notification.BookingUpdated, updated)
	return s.populate(ctx, updated)
}

func (s *BookingService) Get(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := s.store.Bookings().Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Booking not found")
	}
	return s.populate(ctx, b)
}

// BookingPage is one page of populated bookings.
type BookingPage struct {
	Items []dto.BookingResponse
	Page  int
	Limit int
	Total int64
}

func (s *BookingService) List(ctx context.Context, q dto.BookingQuery) (*BookingPage, error) {
	f, err := bookingFilter(q)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, f)
}

func (s *BookingService) ListForStudent(ctx context.Context, studentID string, q dto.BookingQuery) (*BookingPage, error) {
	f, err := bookingFilter(q)
	if err != nil {
		return nil, err
	}
	f.StudentID = studentID
	return s.list(ctx, f)
}

// ListForVendor hides pending requests; vendors see bookings once they are actioned.
func (s *BookingService) ListForVendor(ctx context.Context, vendorID string, q dto.BookingQuery) (*BookingPage, error) {
	f, err := s.vendorFilter(ctx, vendorID, q)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, f)
}

func (s *BookingService) Stats(ctx context.Context, q dto.BookingQuery) (*models.BookingStats, error) {
	f, err := bookingFilter(q)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.Bookings().Stats(ctx, f)
	if err != nil {
		return nil, errors.Internal("Failed to compute booking stats", err)
	}
	return stats, nil
}

func (s *BookingService) VendorStats(ctx context.Context, vendorID string, q dto.BookingQuery) (*models.BookingStats, error) {
	f, err := s.vendorFilter(ctx, vendorID, q)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.Bookings().Stats(ctx, f)
	if err != nil {
		return nil, errors.Internal("Failed to compute booking stats", err)
	}
	return stats, nil
}

func (s *BookingService) vendorFilter(ctx context.Context, vendorID string, q dto.BookingQuery) (store.BookingFilter, error) {
	f, err := bookingFilter(q)
	if err != nil {
		return f, err
	}
	if vendorID != "" {
		ids, err := s.store.Properties().IDsByVendor(ctx, vendorID)
		if err != nil {
			return f, errors.Internal("Failed to load vendor properties", err)
		}
		f.PropertyIDs = ids
		f.ScopeToIDs = true
		if q.Property != "" {
			f.PropertyIDs = intersect(ids, q.Property)
		}
	}
	f.ExcludeStatus = models.BookingPending
	return f, nil
}

func (s *BookingService) list(ctx context.Context, f store.BookingFilter) (*BookingPage, error) {
	bookings, total, err := s.store.Bookings().List(ctx, f)
	if err != nil {
		return nil, errors.Internal("Failed to list bookings", err)
	}
	items, err := s.populateAll(ctx, bookings)
	if err != nil {
		return nil, err
	}
	return &BookingPage{Items: items, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

func bookingFilter(q dto.BookingQuery) (store.BookingFilter, error) {
	page, limit := store.Normalize(q.Page, q.Limit, constants.DefaultLimit, constants.MaxLimit)
	f := store.BookingFilter{
		StudentID: q.Student,
		Page:      page,
		Limit:     limit,
	}
	if q.Property != "" {
		f.PropertyIDs = []string{q.Property}
	}
	if q.BookingStatus != "" {
		status := models.BookingStatus(q.BookingStatus)
		if !status.Valid() {
			return f, errors.Validation("Invalid bookingStatus filter")
		}
		f.BookingStatus = status
	}
	if q.PaymentStatus != "" {
		status, err := models.ParsePaymentStatus(q.PaymentStatus)
		if err != nil {
			return f, errors.Validation("Invalid paymentStatus filter")
		}
		f.PaymentStatus = status
	}
	return f, nil
}

func intersect(ids []string, id string) []string {
	for _, v := range ids {
		if v == id {
			return []string{id}
		}
	}
	return []string{}
}

func (s *BookingService) populate(ctx context.Context, b *models.Booking) (*dto.BookingResponse, error) {
	items, err := s.populateAll(ctx, []models.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// populateAll resolves student, property, room and bed references, loading
// each student and property once.
func (s *BookingService) populateAll(ctx context.Context, bookings []models.Booking) ([]dto.BookingResponse, error) {
	students := map[string]*models.Student{}
	props := map[string]*models.Property{}
	out := make([]dto.BookingResponse, 0, len(bookings))

	for _, b := range bookings {
		resp := dto.BookingResponse{Booking: b}

		st, seen := students[b.StudentID]
		if !seen {
			loaded, err := s.store.Students().Get(ctx, b.StudentID)
			if err != nil && !isStoreNotFound(err) {
				return nil, errors.Internal("Failed to load student", err)
			}
			st = loaded
			students[b.StudentID] = st
		}
		if st != nil {
			resp.StudentInfo = &dto.StudentSummary{ID: st.ID, Name: st.Name, Email: st.Email, Phone: st.Phone}
		}

		p, seen := props[b.PropertyID]
		if !seen {
			loaded, err := s.store.Properties().Get(ctx, b.PropertyID)
			if err != nil && !isStoreNotFound(err) {
				return nil, errors.Internal("Failed to load property", err)
			}
			p = loaded
			props[b.PropertyID] = p
		}
		if p != nil {
			resp.PropertyInfo = &dto.PropertySummary{ID: p.ID, PropertyID: p.PropertyID, Name: p.Name, City: p.City, Area: p.Area}
			if room, err := p.Room(b.RoomID); err == nil {
				resp.RoomInfo = &dto.RoomSummary{ID: room.ID, RoomNumber: room.RoomNumber, DisplayName: room.DisplayName, Rent: room.Rent}
				if bed := room.Bed(b.BedID); bed != nil {
					resp.BedInfo = &dto.BedSummary{ID: bed.ID, BedNumber: bed.BedNumber, Status: bed.Status}
				}
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// publish broadcasts a booking event and drops cached listings; both are best-effort.
func (s *BookingService) publish(ctx context.Context, kind string, b *models.Booking) {
	s.cache.invalidate(ctx, constants.PublicPropertiesCachePrefix)
	msg := notification.NewMessageBuilder(kind).
		Booking(b.BookingID).
		Bed(b.PropertyID, b.RoomID, b.BedID).
		Status(string(b.BookingStatus)).
		Build()
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Warn("broadcast %s: %v", kind, err)
	}
}
