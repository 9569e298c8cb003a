package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"stayhub/models"
	"stayhub/store"
)

type bookingStore struct {
	s  *Store
	tx bool
}

func (r bookingStore) Create(ctx context.Context, b *models.Booking) error {
	defer r.s.lockWrite(r.tx)()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if _, ok := r.s.d.bookings[b.ID]; ok {
		return store.ErrDuplicate
	}
	for _, other := range r.s.d.bookings {
		if b.BookingID != "" && other.BookingID == b.BookingID {
			return store.ErrDuplicate
		}
	}
	b.RecomputeRemaining()
	stamp(&b.CreatedAt, &b.UpdatedAt, r.s.now())
	cp := *b
	r.s.d.bookings[b.ID] = &cp
	return nil
}

func (r bookingStore) Get(ctx context.Context, id string) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if b, ok := r.s.d.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	for _, b := range r.s.d.bookings {
		if b.BookingID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r bookingStore) Update(ctx context.Context, b *models.Booking) error {
	defer r.s.lockWrite(r.tx)()
	current, ok := r.s.d.bookings[b.ID]
	if !ok {
		return store.ErrNotFound
	}
	b.RecomputeRemaining()
	b.CreatedAt = current.CreatedAt
	b.UpdatedAt = r.s.now()
	cp := *b
	r.s.d.bookings[b.ID] = &cp
	return nil
}

func (r bookingStore) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.d.bookings[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.d.bookings, id)
	return nil
}

func matchBooking(b *models.Booking, f store.BookingFilter) bool {
	if f.StudentID != "" && b.StudentID != f.StudentID {
		return false
	}
	if f.ScopeToIDs || len(f.PropertyIDs) > 0 {
		found := false
		for _, id := range f.PropertyIDs {
			if id == b.PropertyID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.BookingStatus != "" && b.BookingStatus != f.BookingStatus {
		return false
	}
	if f.PaymentStatus != "" && b.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.ExcludeStatus != "" && b.BookingStatus == f.ExcludeStatus {
		return false
	}
	return true
}

func (r bookingStore) List(ctx context.Context, f store.BookingFilter) ([]models.Booking, int64, error) {
	r.s.mu.RLock()
	var matched []models.Booking
	for _, b := range r.s.d.bookings {
		if matchBooking(b, f) {
			matched = append(matched, *b)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r bookingStore) Stats(ctx context.Context, f store.BookingFilter) (*models.BookingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stats := &models.BookingStats{
		ByBookingStatus: map[string]int64{},
		ByPaymentStatus: map[string]int64{},
	}
	for _, b := range r.s.d.bookings {
		if !matchBooking(b, f) {
			continue
		}
		stats.Total++
		stats.ByBookingStatus[string(b.BookingStatus)]++
		stats.ByPaymentStatus[string(b.PaymentStatus)]++
		stats.TotalAmount += b.TotalAmount
		stats.AdvanceAmount += b.AdvanceAmount
		stats.RemainingAmount += b.RemainingAmount
	}
	return stats, nil
}

type paymentStore struct {
	s  *Store
	tx bool
}

func (r paymentStore) Create(ctx context.Context, p *models.Payment) error {
	defer r.s.lockWrite(r.tx)()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	stamp(&p.CreatedAt, &p.UpdatedAt, r.s.now())
	cp := *p
	r.s.d.payments[p.ID] = &cp
	return nil
}

func (r paymentStore) Get(ctx context.Context, id string) (*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.d.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r paymentStore) Update(ctx context.Context, p *models.Payment) error {
	defer r.s.lockWrite(r.tx)()
	current, ok := r.s.d.payments[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = r.s.now()
	cp := *p
	r.s.d.payments[p.ID] = &cp
	return nil
}

func (r paymentStore) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.d.payments[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.d.payments, id)
	return nil
}

func (r paymentStore) ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	r.s.mu.RLock()
	var out []models.Payment
	for _, p := range r.s.d.payments {
		if studentID == "" || p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r paymentStore) Balance(ctx context.Context, studentID, excludeID string) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var balance float64
	for _, p := range r.s.d.payments {
		if p.StudentID != studentID || (excludeID != "" && p.ID == excludeID) {
			continue
		}
		if p.Type == models.PaymentCredit {
			balance += p.Amount
		} else {
			balance -= p.Amount
		}
	}
	return balance, nil
}
