package game

import "fmt"

// NumPositions is the number of seats at the table.
const NumPositions = 4

// Position is a seat index, 0 through 3, in clockwise order.
type Position int

// Valid reports whether p is a seat at the table.
func (p Position) Valid() bool {
	return p >= 0 && p < NumPositions
}

// Next returns the seat to the left of p.
func (p Position) Next() Position {
	return NextPosition(p)
}

// Partner returns the seat across the table.
func (p Position) Partner() Position {
	return (p + 2) % NumPositions
}

// Side returns the partnership p belongs to.
func (p Position) Side() Side {
	return Side(p % 2)
}

// NextPosition returns the next seat clockwise, wrapping around
func NextPosition(p Position) Position {
	return (p + 1) % NumPositions
}

// IsOnSameTeam reports whether a and b are the same seat or partners.
// Use a != b as well when only partners should match.
func IsOnSameTeam(a, b Position) bool {
	d := a - b
	return d == 0 || d == 2 || d == -2
}

// Side identifies one of the two partnerships.
type Side int

const (
	SideNorthSouth Side = iota // seats 0 and 2
	SideEastWest               // seats 1 and 3
)

func (s Side) String() string {
	switch s {
	case SideNorthSouth:
		return "north-south"
	case SideEastWest:
		return "east-west"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Opponent returns the other partnership.
func (s Side) Opponent() Side {
	return 1 - s
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side name.
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "north-south":
		*s = SideNorthSouth
	case "east-west":
		*s = SideEastWest
	default:
		return fmt.Errorf("%w: unknown side %q", ErrValidation, text)
	}
	return nil
}
