package simworld

import (
	"fmt"

	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/world"
)

// Facility is a simulated production facility. Energy refills to MaxEnergyCap
// every tick; one request is accepted per tick.
type Facility struct {
	FacilityID   string
	Pos          world.Position
	MaxEnergyCap int
	Energy       int
	Idle         bool
	Average      float64
	RoomLevel    int

	// Requests records every accepted recruit request.
	Requests []world.RecruitRequest

	w        *World
	busyTick int64
}

func (f *Facility) ID() string                   { return f.FacilityID }
func (f *Facility) Room() string                 { return f.Pos.Room }
func (f *Facility) Position() world.Position     { return f.Pos }
func (f *Facility) Available() bool              { return f.Idle && f.busyTick != f.w.Tick }
func (f *Facility) MaxEnergy() int               { return f.MaxEnergyCap }
func (f *Facility) AverageAvailability() float64 { return f.Average }
func (f *Facility) Level() int                   { return f.RoomLevel }

// Recruit queues a unit. It becomes visible as spawning immediately.
func (f *Facility) Recruit(req world.RecruitRequest) (string, error) {
	if !f.Available() {
		return "", fmt.Errorf("%s: %w", f.FacilityID, world.ErrBusy)
	}
	if len(req.Body) == 0 || len(req.Body) > body.MaxParts {
		return "", world.ErrInvalidBody
	}
	if _, ok := f.w.units[req.Name]; ok {
		return "", world.ErrNameExists
	}
	cost := body.Price(req.Body)
	if cost > f.Energy {
		return "", world.ErrNotEnoughEnergy
	}

	f.Energy -= cost
	f.busyTick = f.w.Tick
	f.Requests = append(f.Requests, req)

	u := NewUnit(req.Name, req.Body, f.Pos)
	u.InSpawn = true
	f.w.units[req.Name] = u
	return req.Name, nil
}
