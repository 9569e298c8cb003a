package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"stayhub/errors"
)

type PropertyType string

const (
	PropertyTypeHostel PropertyType = "Hostel"
	PropertyTypePG     PropertyType = "PG"
	PropertyTypeBoth   PropertyType = "Both"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeHostel, PropertyTypePG, PropertyTypeBoth:
		return true
	}
	return false
}

type PropertyStatus string

const (
	PropertyStatusDraft  PropertyStatus = "draft"
	PropertyStatusPublic PropertyStatus = "public"
)

func (s PropertyStatus) Valid() bool {
	return s == PropertyStatusDraft || s == PropertyStatusPublic
}

// Property is the aggregate root. Rooms and their beds live inside the
// property row and are only changed through the methods below, each of
// which ends with Recompute.
type Property struct {
	ID            string         `json:"_id" gorm:"primaryKey;size:36"`
	PropertyID    string         `json:"propertyId" gorm:"uniqueIndex;size:32"`
	Slug          string         `json:"slug" gorm:"index;size:160"`
	VendorID      string         `json:"vendorId" gorm:"index;size:36"`
	Name          string         `json:"name"`
	Type          PropertyType   `json:"type" gorm:"size:16"`
	Gender        string         `json:"gender" gorm:"size:16"`
	Address       string         `json:"address"`
	Area          string         `json:"area"`
	City          string         `json:"city" gorm:"index"`
	State         string         `json:"state"`
	Pincode       string         `json:"pincode" gorm:"size:12"`
	ContactNumber string         `json:"contactNumber" gorm:"size:15"`
	Email         string         `json:"email,omitempty"`
	Description   string         `json:"description,omitempty"`
	Amenities     pq.StringArray `json:"amenities" gorm:"type:text[]"`
	Rules         datatypes.JSON `json:"rules,omitempty"`
	Images        []string       `json:"images" gorm:"type:jsonb;serializer:json"`
	Status        PropertyStatus `json:"status" gorm:"size:16;index"`

	Rooms []Room `json:"rooms" gorm:"type:jsonb;serializer:json"`

	TotalRooms      int     `json:"totalRooms"`
	TotalBeds       int     `json:"totalBeds"`
	OccupiedBeds    int     `json:"occupiedBeds"`
	AvailableBeds   int     `json:"availableBeds"`
	OnBookBeds      int     `json:"onBookBeds"`
	NoticeBeds      int     `json:"noticeBeds"`
	MaintenanceBeds int     `json:"maintenanceBeds"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`

	IsActive  bool      `json:"isActive" gorm:"default:true;index"`
	Version   int64     `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeSave giữ các bộ đếm luôn khớp với danh sách phòng trước mỗi lần lưu
func (p *Property) BeforeSave(tx *gorm.DB) error {
	p.Recompute()
	return nil
}

// Recompute derives the roll-up counters from active rooms and their beds.
func (p *Property) Recompute() {
	p.TotalRooms, p.TotalBeds = 0, 0
	p.OccupiedBeds, p.AvailableBeds, p.OnBookBeds = 0, 0, 0
	p.NoticeBeds, p.MaintenanceBeds = 0, 0
	p.MonthlyRevenue = 0

	for i := range p.Rooms {
		room := &p.Rooms[i]
		if !room.IsActive {
			continue
		}
		p.TotalRooms++
		p.TotalBeds += len(room.Beds)
		for _, bed := range room.Beds {
			switch bed.Status {
			case BedOccupied:
				p.OccupiedBeds++
				p.MonthlyRevenue += room.Rent
			case BedNotice:
				p.NoticeBeds++
				p.MonthlyRevenue += room.Rent
			case BedOnBook:
				p.OnBookBeds++
			case BedMaintenance:
				p.MaintenanceBeds++
			default:
				p.AvailableBeds++
			}
		}
	}
}

// Room trả về phòng theo id, kể cả phòng đã bị ẩn
func (p *Property) Room(roomID string) (*Room, error) {
	for i := range p.Rooms {
		if p.Rooms[i].ID == roomID {
			return &p.Rooms[i], nil
		}
	}
	return nil, errors.NotFound("Room not found")
}

// ActiveRoom is Room restricted to rooms that were not soft-deleted.
func (p *Property) ActiveRoom(roomID string) (*Room, error) {
	room, err := p.Room(roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, errors.Validation("Room is not active")
	}
	return room, nil
}

func (p *Property) Bed(roomID, bedID string) (*Room, *Bed, error) {
	room, err := p.Room(roomID)
	if err != nil {
		return nil, nil, err
	}
	bed := room.Bed(bedID)
	if bed == nil {
		return nil, nil, errors.NotFound("Bed not found")
	}
	return room, bed, nil
}

func (p *Property) ActiveRooms() []Room {
	rooms := make([]Room, 0, len(p.Rooms))
	for _, r := range p.Rooms {
		if r.IsActive {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// AddRoom appends a room with spec.TotalBeds available beds.
func (p *Property) AddRoom(spec RoomSpec, now time.Time) (*Room, error) {
	if spec.RoomNumber != "" && p.hasActiveRoomNumber(spec.RoomNumber, "") {
		return nil, errors.ErrDuplicateRoomNumber
	}
	room := newRoom(spec, now)
	p.Rooms = append(p.Rooms, room)
	p.Recompute()
	return &p.Rooms[len(p.Rooms)-1], nil
}

// UpdateRoom applies spec to an active room. Existing beds are kept up to
// the new count; growing appends available beds.
func (p *Property) UpdateRoom(roomID string, spec RoomSpec, now time.Time) (*Room, error) {
	room, err := p.ActiveRoom(roomID)
	if err != nil {
		return nil, err
	}
	if spec.RoomNumber != "" && p.hasActiveRoomNumber(spec.RoomNumber, roomID) {
		return nil, errors.ErrDuplicateRoomNumber
	}
	if err := room.resizeBeds(spec.TotalBeds); err != nil {
		return nil, err
	}
	room.apply(spec, now)
	p.Recompute()
	return room, nil
}

// DeleteRoom hides the room. Refused while any bed is occupied.
func (p *Property) DeleteRoom(roomID string, now time.Time) error {
	room, err := p.ActiveRoom(roomID)
	if err != nil {
		return err
	}
	if room.CountBeds(BedOccupied) > 0 {
		return errors.ErrRoomHasOccupied
	}
	room.IsActive = false
	room.UpdatedAt = now
	p.Recompute()
	return nil
}

// ClaimBed moves an available bed to status (onbook or occupied) and stores
// the occupant snapshot.
func (p *Property) ClaimBed(roomID, bedID string, status BedStatus, occ Occupant) error {
	room, err := p.ActiveRoom(roomID)
	if err != nil {
		return err
	}
	bed := room.Bed(bedID)
	if bed == nil {
		return errors.NotFound("Bed not found")
	}
	if err := bed.claim(status, occ); err != nil {
		return err
	}
	p.Recompute()
	return nil
}

// ReleaseBed returns a bed to available whatever its state.
func (p *Property) ReleaseBed(roomID, bedID string) error {
	_, bed, err := p.Bed(roomID, bedID)
	if err != nil {
		return err
	}
	bed.release()
	p.Recompute()
	return nil
}

// TransitionBed applies a status change that is not a claim or a release:
// onbook -> occupied, occupied|onbook -> notice, available <-> maintenance.
func (p *Property) TransitionBed(roomID, bedID string, to BedStatus, at time.Time) error {
	_, bed, err := p.Bed(roomID, bedID)
	if err != nil {
		return err
	}
	if err := bed.transition(to, at); err != nil {
		return err
	}
	p.Recompute()
	return nil
}

func (p *Property) hasActiveRoomNumber(number, exceptRoomID string) bool {
	for _, r := range p.Rooms {
		if r.IsActive && r.ID != exceptRoomID && strings.EqualFold(r.RoomNumber, number) {
			return true
		}
	}
	return false
}

// Clone deep-copies rooms and beds so callers can mutate without aliasing.
func (p *Property) Clone() *Property {
	cp := *p
	cp.Amenities = append(pq.StringArray(nil), p.Amenities...)
	cp.Images = append([]string(nil), p.Images...)
	cp.Rules = append(datatypes.JSON(nil), p.Rules...)
	cp.Rooms = make([]Room, len(p.Rooms))
	for i, r := range p.Rooms {
		r.Beds = append([]Bed(nil), r.Beds...)
		cp.Rooms[i] = r
	}
	return &cp
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify transliterates name to ascii and joins it with suffix.
func Slugify(name, suffix string) string {
	base := strings.ToLower(unidecode.Unidecode(name))
	base = strings.Trim(nonSlugChars.ReplaceAllString(base, "-"), "-")
	suffix = strings.ToLower(suffix)
	if base == "" {
		return suffix
	}
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}
