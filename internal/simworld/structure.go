package simworld

import "github.com/dyluth/warren/internal/world"

// Structure is a simulated structure or construction site.
type Structure struct {
	StructureID string
	Type        world.StructureKind
	HitPoints   int
	MaxHits     int
	Pos         world.Position
}

func (s *Structure) ID() string                { return s.StructureID }
func (s *Structure) Kind() world.StructureKind { return s.Type }
func (s *Structure) Hits() int                 { return s.HitPoints }
func (s *Structure) HitsMax() int              { return s.MaxHits }
func (s *Structure) Position() world.Position  { return s.Pos }

// Tower is a stationary healer.
type Tower struct {
	Room   string
	Healed []string
}

// Heal restores the unit to full health.
func (t *Tower) Heal(u world.Unit) error {
	if su, ok := u.(*Unit); ok {
		su.HitPoints = su.MaxHits
	}
	t.Healed = append(t.Healed, u.Name())
	return nil
}
