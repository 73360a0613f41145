package world

import "fmt"

// RoomSize is the edge length of a room in tiles.
const RoomSize = 50

// Position is a tile within a named room.
type Position struct {
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	Room string `json:"room" yaml:"room"`
}

func (p Position) String() string {
	return fmt.Sprintf("%s[%d,%d]", p.Room, p.X, p.Y)
}

// RangeTo returns the Chebyshev distance to other. Positions in different rooms
// are treated as infinitely far apart.
func (p Position) RangeTo(other Position) int {
	if p.Room != other.Room {
		return int(^uint(0) >> 1)
	}
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// InRangeTo reports whether other is within r tiles in the same room.
func (p Position) InRangeTo(other Position, r int) bool {
	return p.Room == other.Room && p.RangeTo(other) <= r
}

// IsNearExit reports whether the position is within margin tiles of a room edge.
func (p Position) IsNearExit(margin int) bool {
	return p.X-margin <= 0 || p.X+margin >= RoomSize-1 ||
		p.Y-margin <= 0 || p.Y+margin >= RoomSize-1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
