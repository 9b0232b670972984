package bidding

import (
	"fmt"

	"belote/game"
)

// Scoring multipliers.
const (
	MultiplierNormal      = 1
	MultiplierCoinched    = 2
	MultiplierSurcoinched = 4
)

// Contract is the outcome of an auction that ended on a standing suit bid.
type Contract struct {
	Suit       game.Suit     `json:"suit"`
	Value      int           `json:"value"`
	Bidder     game.Position `json:"bidder"`
	Side       game.Side     `json:"side"`
	Multiplier int           `json:"multiplier"`
}

// Stake is the contract value scaled by the multiplier.
func (c Contract) Stake() int {
	return c.Value * c.Multiplier
}

// IsCapot reports whether the declarers committed to every trick.
func (c Contract) IsCapot() bool {
	return c.Value == Capot
}

// Trump returns the contract suit in the form game.CardPoints expects.
func (c Contract) Trump() *game.Suit {
	suit := c.Suit
	return &suit
}

func (c Contract) String() string {
	s := fmt.Sprintf("%d %s by seat %d (%s)", c.Value, c.Suit, int(c.Bidder), c.Side)
	switch c.Multiplier {
	case MultiplierCoinched:
		s += ", coinched"
	case MultiplierSurcoinched:
		s += ", surcoinched"
	}
	return s
}
