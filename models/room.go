package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stayhub/errors"
)

type BedStatus string

const (
	BedAvailable   BedStatus = "available"
	BedOccupied    BedStatus = "occupied"
	BedOnBook      BedStatus = "onbook"
	BedNotice      BedStatus = "notice"
	BedMaintenance BedStatus = "maintenance"
)

func (s BedStatus) Valid() bool {
	switch s {
	case BedAvailable, BedOccupied, BedOnBook, BedNotice, BedMaintenance:
		return true
	}
	return false
}

const (
	ACTypeAC    = "AC"
	ACTypeNonAC = "Non AC"

	BedSizeSingle = "Single"
	BedSizeDouble = "Double"
	BedSizeOther  = "Other"
)

// Room is embedded in Property and owns its beds.
type Room struct {
	ID           string    `json:"_id"`
	RoomNumber   string    `json:"roomNumber,omitempty"`
	NoOfSharing  int       `json:"noOfSharing"`
	ACType       string    `json:"acType"`
	BedSize      string    `json:"bedSize"`
	DisplayName  string    `json:"displayName"`
	Rent         float64   `json:"rent"`
	BathroomType string    `json:"bathroomType,omitempty"`
	TotalBeds    int       `json:"totalBeds"`
	Beds         []Bed     `json:"beds"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Bed is the smallest bookable unit. Occupant fields are set whenever the
// status is not available.
type Bed struct {
	ID           string     `json:"_id"`
	BedNumber    int        `json:"bedNumber"`
	Status       BedStatus  `json:"status"`
	BookingID    string     `json:"bookingId,omitempty"`
	StudentName  string     `json:"studentName,omitempty"`
	StudentEmail string     `json:"studentEmail,omitempty"`
	StudentPhone string     `json:"studentPhone,omitempty"`
	JoiningDate  *time.Time `json:"joiningDate,omitempty"`
	BookingDate  *time.Time `json:"bookingDate,omitempty"`
	RentDueDate  *time.Time `json:"rentDueDate,omitempty"`
	NoticeDate   *time.Time `json:"noticeDate,omitempty"`
}

// RoomSpec là dữ liệu đã được validate để tạo hoặc sửa phòng
type RoomSpec struct {
	RoomNumber   string
	NoOfSharing  int
	ACType       string
	BedSize      string
	Rent         float64
	BathroomType string
	TotalBeds    int
}

// Occupant is the snapshot copied onto a bed when it is claimed.
type Occupant struct {
	BookingID string
	Name      string
	Email     string
	Phone     string
	CheckIn   time.Time
	BookedAt  time.Time
}

func DisplayName(sharing int, acType string) string {
	return fmt.Sprintf("%d-Sharing-%s", sharing, acType)
}

func newRoom(spec RoomSpec, now time.Time) Room {
	room := Room{
		ID:        uuid.NewString(),
		IsActive:  true,
		CreatedAt: now,
	}
	room.apply(spec, now)
	room.Beds = make([]Bed, 0, spec.TotalBeds)
	room.appendBeds(spec.TotalBeds)
	return room
}

func (r *Room) apply(spec RoomSpec, now time.Time) {
	r.RoomNumber = spec.RoomNumber
	r.NoOfSharing = spec.NoOfSharing
	r.ACType = spec.ACType
	r.BedSize = spec.BedSize
	r.Rent = spec.Rent
	r.BathroomType = spec.BathroomType
	r.TotalBeds = spec.TotalBeds
	r.DisplayName = DisplayName(spec.NoOfSharing, spec.ACType)
	r.UpdatedAt = now
}

func (r *Room) appendBeds(n int) {
	next := 1
	for _, b := range r.Beds {
		if b.BedNumber >= next {
			next = b.BedNumber + 1
		}
	}
	for i := 0; i < n; i++ {
		r.Beds = append(r.Beds, Bed{
			ID:        uuid.NewString(),
			BedNumber: next + i,
			Status:    BedAvailable,
		})
	}
}

// resizeBeds keeps the first min(old,new) beds and appends available ones
// when growing. A decrease must leave more beds than are occupied and may
// only drop beds that carry no occupant.
func (r *Room) resizeBeds(total int) error {
	current := len(r.Beds)
	switch {
	case total == current:
		return nil
	case total > current:
		r.appendBeds(total - current)
	default:
		if total <= r.CountBeds(BedOccupied) {
			return errors.ErrBedsBelowOccupied
		}
		for _, b := range r.Beds[total:] {
			if b.Status != BedAvailable && b.Status != BedMaintenance {
				return errors.ErrBedsBelowOccupied
			}
		}
		r.Beds = r.Beds[:total]
	}
	r.TotalBeds = total
	return nil
}

func (r *Room) Bed(bedID string) *Bed {
	for i := range r.Beds {
		if r.Beds[i].ID == bedID {
			return &r.Beds[i]
		}
	}
	return nil
}

func (r *Room) CountBeds(status BedStatus) int {
	n := 0
	for _, b := range r.Beds {
		if b.Status == status {
			n++
		}
	}
	return n
}

func (b *Bed) claim(status BedStatus, occ Occupant) error {
	if status != BedOnBook && status != BedOccupied {
		return errors.Validation(fmt.Sprintf("Cannot claim bed as %q", status))
	}
	if b.Status != BedAvailable && b.Status != "" {
		return errors.ErrBedUnavailable
	}
	checkIn := occ.CheckIn
	bookedAt := occ.BookedAt
	due := checkIn.AddDate(0, 1, 0)

	b.Status = status
	b.BookingID = occ.BookingID
	b.StudentName = occ.Name
	b.StudentEmail = occ.Email
	b.StudentPhone = occ.Phone
	b.JoiningDate = &checkIn
	b.BookingDate = &bookedAt
	b.RentDueDate = &due
	b.NoticeDate = nil
	return nil
}

// UpdateCheckIn moves the joining and rent due dates of a claimed bed.
func (b *Bed) UpdateCheckIn(checkIn time.Time) {
	if b.Status == BedAvailable {
		return
	}
	due := checkIn.AddDate(0, 1, 0)
	b.JoiningDate = &checkIn
	b.RentDueDate = &due
}

func (b *Bed) release() {
	*b = Bed{
		ID:        b.ID,
		BedNumber: b.BedNumber,
		Status:    BedAvailable,
	}
}

func (b *Bed) transition(to BedStatus, at time.Time) error {
	from := b.Status
	switch {
	case from == BedOnBook && to == BedOccupied:
		b.Status = BedOccupied
	case (from == BedOccupied || from == BedOnBook) && to == BedNotice:
		b.Status = BedNotice
		b.NoticeDate = &at
	case from == BedAvailable && to == BedMaintenance:
		b.Status = BedMaintenance
	case from == BedMaintenance && to == BedAvailable:
		b.Status = BedAvailable
	case to == BedAvailable:
		b.release()
	default:
		return errors.Validation(fmt.Sprintf("Cannot change bed status from %s to %s", from, to))
	}
	return nil
}
