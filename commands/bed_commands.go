package commands

import (
	"time"

	"stayhub/models"
)

// BedCommand là một thao tác trên giường, áp dụng lên property đã load.
// Nhiều command trên cùng property được chạy trong một lần lưu.
type BedCommand interface {
	Apply(p *models.Property) error
}

// ClaimBedCommand moves an available bed to onbook or occupied.
type ClaimBedCommand struct {
	RoomID   string
	BedID    string
	Status   models.BedStatus
	Occupant models.Occupant
}

func NewClaimBedCommand(roomID, bedID string, status models.BedStatus, occ models.Occupant) *ClaimBedCommand {
	return &ClaimBedCommand{RoomID: roomID, BedID: bedID, Status: status, Occupant: occ}
}

func (c *ClaimBedCommand) Apply(p *models.Property) error {
	return p.ClaimBed(c.RoomID, c.BedID, c.Status, c.Occupant)
}

// ReleaseBedCommand puts a bed back to available. A bed whose snapshot
// belongs to a different booking is left alone, and OnlyIf restricts the
// release to the listed statuses.
type ReleaseBedCommand struct {
	RoomID    string
	BedID     string
	BookingID string
	OnlyIf    []models.BedStatus

	// Released reports whether the bed was actually changed.
	Released bool
}

func NewReleaseBedCommand(roomID, bedID, bookingID string, onlyIf ...models.BedStatus) *ReleaseBedCommand {
	return &ReleaseBedCommand{RoomID: roomID, BedID: bedID, BookingID: bookingID, OnlyIf: onlyIf}
}

func (c *ReleaseBedCommand) Apply(p *models.Property) error {
	c.Released = false
	_, bed, err := p.Bed(c.RoomID, c.BedID)
	if err != nil {
		return err
	}
	if bed.Status == models.BedAvailable {
		return nil
	}
	if c.BookingID != "" && bed.BookingID != "" && bed.BookingID != c.BookingID {
		return nil
	}
	if len(c.OnlyIf) > 0 && !contains(c.OnlyIf, bed.Status) {
		return nil
	}
	if err := p.ReleaseBed(c.RoomID, c.BedID); err != nil {
		return err
	}
	c.Released = true
	return nil
}

// TransitionBedCommand applies a non-claim status change. Skip lists the
// current statuses for which the command is a no-op.
type TransitionBedCommand struct {
	RoomID string
	BedID  string
	To     models.BedStatus
	At     time.Time
	Skip   []models.BedStatus
}

func NewTransitionBedCommand(roomID, bedID string, to models.BedStatus, at time.Time) *TransitionBedCommand {
	return &TransitionBedCommand{RoomID: roomID, BedID: bedID, To: to, At: at}
}

func (c *TransitionBedCommand) Apply(p *models.Property) error {
	if len(c.Skip) > 0 {
		_, bed, err := p.Bed(c.RoomID, c.BedID)
		if err != nil {
			return err
		}
		if contains(c.Skip, bed.Status) {
			return nil
		}
	}
	return p.TransitionBed(c.RoomID, c.BedID, c.To, c.At)
}

// UpdateCheckInCommand moves the joining and rent due dates of a held bed.
type UpdateCheckInCommand struct {
	RoomID    string
	BedID     string
	BookingID string
	CheckIn   time.Time
}

func (c *UpdateCheckInCommand) Apply(p *models.Property) error {
	_, bed, err := p.Bed(c.RoomID, c.BedID)
	if err != nil {
		return err
	}
	if bed.BookingID == c.BookingID {
		bed.UpdateCheckIn(c.CheckIn)
	}
	return nil
}

// Func adapts a plain function to BedCommand for room and property edits.
type Func func(p *models.Property) error

func (f Func) Apply(p *models.Property) error {
	return f(p)
}

// Sequence runs commands in order and stops at the first error.
type Sequence []BedCommand

func (s Sequence) Apply(p *models.Property) error {
	for _, cmd := range s {
		if err := cmd.Apply(p); err != nil {
			return err
		}
	}
	p.Recompute()
	return nil
}

func contains(list []models.BedStatus, s models.BedStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
