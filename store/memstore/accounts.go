package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"stayhub/models"
	"stayhub/store"
)

type studentStore struct {
	s  *Store
	tx bool
}

func (r studentStore) Create(ctx context.Context, st *models.Student) error {
	defer r.s.lockWrite(r.tx)()
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	for _, other := range r.s.d.students {
		if strings.EqualFold(other.Email, st.Email) ||
			(st.Phone != "" && other.Phone == st.Phone) ||
			(st.ReferralCode != "" && other.ReferralCode == st.ReferralCode) {
			return store.ErrDuplicate
		}
	}
	stamp(&st.CreatedAt, &st.UpdatedAt, r.s.now())
	cp := *st
	r.s.d.students[st.ID] = &cp
	return nil
}

func (r studentStore) find(match func(*models.Student) bool) (*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, st := range r.s.d.students {
		if match(st) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r studentStore) Get(ctx context.Context, id string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return st.ID == id })
}

func (r studentStore) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return strings.EqualFold(st.Email, email) })
}

func (r studentStore) GetByPhone(ctx context.Context, phone string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return st.Phone == phone })
}

func (r studentStore) GetByReferralCode(ctx context.Context, code string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return st.ReferralCode == code })
}

func (r studentStore) GetByGoogleID(ctx context.Context, googleID string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return googleID != "" && st.GoogleID == googleID })
}

func (r studentStore) Update(ctx context.Context, st *models.Student) error {
	defer r.s.lockWrite(r.tx)()
	current, ok := r.s.d.students[st.ID]
	if !ok {
		return store.ErrNotFound
	}
	st.CreatedAt = current.CreatedAt
	st.UpdatedAt = r.s.now()
	cp := *st
	r.s.d.students[st.ID] = &cp
	return nil
}

func (r studentStore) AdjustBookings(ctx context.Context, id string, delta int, currentBooking *string) error {
	defer r.s.lockWrite(r.tx)()
	st, ok := r.s.d.students[id]
	if !ok {
		return store.ErrNotFound
	}
	st.TotalBookings += delta
	if st.TotalBookings < 0 {
		st.TotalBookings = 0
	}
	if currentBooking != nil {
		st.CurrentBooking = *currentBooking
	}
	st.UpdatedAt = r.s.now()
	return nil
}

// Lock is a no-op: Transaction already serializes writers.
func (r studentStore) Lock(ctx context.Context, id string) error {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.d.students[id]; !ok {
		return store.ErrNotFound
	}
	return nil
}

type vendorStore struct {
	s  *Store
	tx bool
}

func (r vendorStore) Create(ctx context.Context, v *models.Vendor) error {
	defer r.s.lockWrite(r.tx)()
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	for _, other := range r.s.d.vendors {
		if strings.EqualFold(other.Email, v.Email) {
			return store.ErrDuplicate
		}
	}
	stamp(&v.CreatedAt, &v.UpdatedAt, r.s.now())
	cp := *v
	r.s.d.vendors[v.ID] = &cp
	return nil
}

func (r vendorStore) Get(ctx context.Context, id string) (*models.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.d.vendors[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r vendorStore) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.d.vendors {
		if strings.EqualFold(v.Email, email) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r vendorStore) List(ctx context.Context) ([]models.Vendor, error) {
	r.s.mu.RLock()
	out := make([]models.Vendor, 0, len(r.s.d.vendors))
	for _, v := range r.s.d.vendors {
		out = append(out, *v)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type adminStore struct {
	s  *Store
	tx bool
}

func (r adminStore) Create(ctx context.Context, a *models.Admin) error {
	defer r.s.lockWrite(r.tx)()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	for _, other := range r.s.d.admins {
		if strings.EqualFold(other.Email, a.Email) {
			return store.ErrDuplicate
		}
	}
	stamp(&a.CreatedAt, &a.UpdatedAt, r.s.now())
	cp := *a
	r.s.d.admins[a.ID] = &cp
	return nil
}

func (r adminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.d.admins {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r adminStore) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.d.admins)), nil
}

type referralStore struct {
	s  *Store
	tx bool
}

func (r referralStore) Create(ctx context.Context, ref *models.Referral) error {
	defer r.s.lockWrite(r.tx)()
	if ref.ID == "" {
		ref.ID = uuid.NewString()
	}
	for _, other := range r.s.d.referrals {
		if other.ReferredID == ref.ReferredID {
			return store.ErrDuplicate
		}
	}
	if ref.CreatedAt.IsZero() {
		ref.CreatedAt = r.s.now()
	}
	cp := *ref
	r.s.d.referrals[ref.ID] = &cp
	return nil
}

func (r referralStore) ListByReferrer(ctx context.Context, referrerID string) ([]models.Referral, error) {
	r.s.mu.RLock()
	var out []models.Referral
	for _, ref := range r.s.d.referrals {
		if ref.ReferrerID == referrerID {
			out = append(out, *ref)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
