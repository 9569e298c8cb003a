// Package memstore is an in-process implementation of store.Store. It backs
// STORE_DRIVER=memory and the service tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stayhub/models"
	"stayhub/store"
)

type data struct {
	properties map[string]*models.Property
	bookings   map[string]*models.Booking
	students   map[string]*models.Student
	vendors    map[string]*models.Vendor
	admins     map[string]*models.Admin
	payments   map[string]*models.Payment
	referrals  map[string]*models.Referral
	counters   map[string]int64
}

func newData() *data {
	return &data{
		properties: map[string]*models.Property{},
		bookings:   map[string]*models.Booking{},
		students:   map[string]*models.Student{},
		vendors:    map[string]*models.Vendor{},
		admins:     map[string]*models.Admin{},
		payments:   map[string]*models.Payment{},
		referrals:  map[string]*models.Referral{},
		counters:   map[string]int64{},
	}
}

func (d *data) clone() *data {
	cp := newData()
	for k, v := range d.properties {
		cp.properties[k] = v.Clone()
	}
	for k, v := range d.bookings {
		b := *v
		cp.bookings[k] = &b
	}
	for k, v := range d.students {
		s := *v
		cp.students[k] = &s
	}
	for k, v := range d.vendors {
		x := *v
		cp.vendors[k] = &x
	}
	for k, v := range d.admins {
		x := *v
		cp.admins[k] = &x
	}
	for k, v := range d.payments {
		x := *v
		cp.payments[k] = &x
	}
	for k, v := range d.referrals {
		x := *v
		cp.referrals[k] = &x
	}
	for k, v := range d.counters {
		cp.counters[k] = v
	}
	return cp
}

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	d    *data
	now  func() time.Time
}

func New() *Store {
	return &Store{d: newData(), now: time.Now}
}

func (s *Store) Properties() store.PropertyStore { return propertyStore{s: s} }
func (s *Store) Bookings() store.BookingStore    { return bookingStore{s: s} }
func (s *Store) Students() store.StudentStore    { return studentStore{s: s} }
func (s *Store) Vendors() store.VendorStore      { return vendorStore{s: s} }
func (s *Store) Admins() store.AdminStore        { return adminStore{s: s} }
func (s *Store) Payments() store.PaymentStore    { return paymentStore{s: s} }
func (s *Store) Referrals() store.ReferralStore  { return referralStore{s: s} }
func (s *Store) Counters() store.CounterStore    { return counterStore{s: s} }

// lockWrite takes the data lock for one write. A write outside a transaction
// first waits for the open transaction, so a rollback only drops that
// transaction's own changes.
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// Transaction serializes transactions and restores a snapshot when fn fails.
// Writes made through the plain store wait until it finishes.
func (s *Store) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.d.clone()
	s.mu.RUnlock()

	if err := fn(txStore{s}); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// txStore is the view handed to a transaction body; nested transactions run inline.
type txStore struct {
	*Store
}

func (t txStore) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(t)
}

func (t txStore) Properties() store.PropertyStore { return propertyStore{s: t.Store, tx: true} }
func (t txStore) Bookings() store.BookingStore    { return bookingStore{s: t.Store, tx: true} }
func (t txStore) Students() store.StudentStore    { return studentStore{s: t.Store, tx: true} }
func (t txStore) Vendors() store.VendorStore      { return vendorStore{s: t.Store, tx: true} }
func (t txStore) Admins() store.AdminStore        { return adminStore{s: t.Store, tx: true} }
func (t txStore) Payments() store.PaymentStore    { return paymentStore{s: t.Store, tx: true} }
func (t txStore) Referrals() store.ReferralStore  { return referralStore{s: t.Store, tx: true} }
func (t txStore) Counters() store.CounterStore    { return counterStore{s: t.Store, tx: true} }

func stamp(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

type propertyStore struct {
	s  *Store
	tx bool
}

func (r propertyStore) Create(ctx context.Context, p *models.Property) error {
	defer r.s.lockWrite(r.tx)()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := r.s.d.properties[p.ID]; ok {
		return store.ErrDuplicate
	}
	for _, other := range r.s.d.properties {
		if other.PropertyID != "" && other.PropertyID == p.PropertyID {
			return store.ErrDuplicate
		}
	}
	p.Recompute()
	stamp(&p.CreatedAt, &p.UpdatedAt, r.s.now())
	r.s.d.properties[p.ID] = p.Clone()
	return nil
}

func (r propertyStore) Get(ctx context.Context, id string) (*models.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.d.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p.Clone(), nil
}

func (r propertyStore) GetBySlug(ctx context.Context, slug string) (*models.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.d.properties {
		if p.Slug == slug {
			return p.Clone(), nil
		}
	}
	return nil, store.ErrNotFound
}

func (r propertyStore) List(ctx context.Context, f store.PropertyFilter) ([]models.Property, int64, error) {
	r.s.mu.RLock()
	var matched []models.Property
	for _, p := range r.s.d.properties {
		if !f.IncludeInactive && !p.IsActive {
			continue
		}
		if f.VendorID != "" && p.VendorID != f.VendorID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.City != "" && !strings.EqualFold(p.City, f.City) {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.Gender != "" && p.Gender != f.Gender {
			continue
		}
		matched = append(matched, *p.Clone())
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return page(matched, f.Page, f.Limit), total, nil
}

func (r propertyStore) IDsByVendor(ctx context.Context, vendorID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, p := range r.s.d.properties {
		if p.VendorID == vendorID {
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r propertyStore) Save(ctx context.Context, p *models.Property) error {
	defer r.s.lockWrite(r.tx)()
	current, ok := r.s.d.properties[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	if current.Version != p.Version {
		return store.ErrVersionConflict
	}
	p.Version++
	p.Recompute()
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.d.properties[p.ID] = p.Clone()
	return nil
}

func page[T any](items []T, pageNum, limit int) []T {
	if limit <= 0 {
		return items
	}
	if pageNum < 1 {
		pageNum = 1
	}
	start := (pageNum - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type counterStore struct {
	s  *Store
	tx bool
}

func (r counterStore) Next(ctx context.Context, name string) (int64, error) {
	defer r.s.lockWrite(r.tx)()
	r.s.d.counters[name]++
	return r.s.d.counters[name], nil
}
