package world

import "errors"

// Failure codes a facility may return from Recruit.
var (
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrBusy            = errors.New("facility busy")
	ErrNameExists      = errors.New("name already exists")
	ErrInvalidBody     = errors.New("invalid body")
	ErrUnavailable     = errors.New("facility unavailable")
)

// Reservation asks the facility to hold back capacity for the request.
type Reservation struct {
	Spawns int `yaml:"spawns"`
	Energy int `yaml:"energy"`
}

// RecruitRequest describes one unit to produce.
type RecruitRequest struct {
	Body        []Part
	Name        string
	Reservation *Reservation
}

// Facility is shared production capacity. Units requested through Recruit
// appear in the UnitTable as spawning from the next lookup onward.
type Facility interface {
	ID() string
	Room() string
	Position() Position
	Available() bool
	MaxEnergy() int
	// AverageAvailability is the recent fraction of cycles the facility was idle, in [0,1].
	AverageAvailability() float64
	// Level is the development level of the room the facility serves.
	Level() int
	Recruit(req RecruitRequest) (string, error)
}

// IsExpectedFailure reports whether a recruit error is a routine capacity
// shortfall that should be retried silently.
func IsExpectedFailure(err error) bool {
	return errors.Is(err, ErrNotEnoughEnergy) || errors.Is(err, ErrBusy)
}
