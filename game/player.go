package game

import (
	"encoding/json"
	"fmt"

	"belote/idgen"
)

// Player represents a seated player. Players are values: SetPlayerHand
// returns a new Player and leaves the original untouched.
type Player struct {
	ID       string
	Name     string
	Position Position
	hand     []Card
}

// NewPlayer creates a player with an empty hand.
func NewPlayer(name string, pos Position, gen IDGenerator) (Player, error) {
	if !pos.Valid() {
		return Player{}, fmt.Errorf("%w: got %d", ErrInvalidPosition, int(pos))
	}
	return Player{
		ID:       gen.GenerateID(idgen.KindPlayer),
		Name:     name,
		Position: pos,
		hand:     []Card{},
	}, nil
}

// Hand returns a copy of the player's cards.
func (p Player) Hand() []Card {
	out := make([]Card, len(p.hand))
	copy(out, p.hand)
	return out
}

// HandSize returns the number of cards held.
func (p Player) HandSize() int {
	return len(p.hand)
}

// SetPlayerHand returns p holding a private copy of cards.
func SetPlayerHand(p Player, cards []Card) Player {
	hand := make([]Card, len(cards))
	copy(hand, cards)
	return Player{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		hand:     hand,
	}
}

type playerJSON struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Hand     []Card   `json:"hand"`
}

// MarshalJSON includes the hand, which is otherwise unexported.
func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(playerJSON{ID: p.ID, Name: p.Name, Position: p.Position, Hand: p.Hand()})
}

// Team represents a team of two players
type Team struct {
	ID      string    `json:"id"`
	Players [2]Player `json:"players"`
}

// NewTeam pairs two players. It does not check that they sit across from
// each other; see NewTeams for the conventional pairing.
func NewTeam(a, b Player, gen IDGenerator) Team {
	return Team{
		ID:      gen.GenerateID(idgen.KindTeam),
		Players: [2]Player{a, b},
	}
}

// NewTeams pairs seats 0 & 2 and 1 & 3. players must be in seat order.
func NewTeams(players [NumPositions]Player, gen IDGenerator) ([2]Team, error) {
	for i, p := range players {
		if p.Position != Position(i) {
			return [2]Team{}, fmt.Errorf("%w: player %q at index %d sits at %d", ErrInvalidPosition, p.Name, i, int(p.Position))
		}
	}
	var teams [2]Team
	for side := SideNorthSouth; side <= SideEastWest; side++ {
		a, b := players[side], players[Position(side).Partner()]
		if !IsOnSameTeam(a.Position, b.Position) {
			return [2]Team{}, fmt.Errorf("%w: seats %d and %d are not partners", ErrInvariant, int(a.Position), int(b.Position))
		}
		teams[side] = NewTeam(a, b, gen)
	}
	return teams, nil
}

// Has reports whether a team member sits at pos.
func (t Team) Has(pos Position) bool {
	return t.Players[0].Position == pos || t.Players[1].Position == pos
}
