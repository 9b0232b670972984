package game

import (
	"fmt"
	"math/rand"
	"strings"

	"belote/idgen"
)

// DeckSize is the number of cards in a Belote deck.
const DeckSize = 32

// IDGenerator mints ids for cards, players and teams.
type IDGenerator interface {
	GenerateID(kind idgen.EntityKind) string
}

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitNames = [...]string{"hearts", "diamonds", "clubs", "spades"}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("suit(%d)", int(s))
	}
	return suitNames[s]
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Hearts && s <= Spades
}

// MarshalText encodes the suit by name.
func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSuit, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a suit name.
func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSuit maps a suit name (case-insensitive) to a Suit.
func ParseSuit(name string) (Suit, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range suitNames {
		if n == name {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSuit, name)
}

// AllSuits returns all suits in order
func AllSuits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// Rank represents a card rank. The numeric value is an index, not a
// strength; use CardRankOrder to compare cards.
type Rank int

const (
	Seven Rank = iota
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = [...]string{"7", "8", "9", "10", "jack", "queen", "king", "ace"}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rank(%d)", int(r))
	}
	return rankNames[r]
}

// Valid reports whether r is one of the eight Belote ranks.
func (r Rank) Valid() bool {
	return r >= Seven && r <= Ace
}

// MarshalText encodes the rank by name.
func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRank, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a rank name.
func (r *Rank) UnmarshalText(text []byte) error {
	parsed, err := ParseRank(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRank maps a rank name to a Rank. Face cards also accept their
// initial ("j", "q", "k", "a").
func ParseRank(name string) (Rank, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "j":
		return Jack, nil
	case "q":
		return Queen, nil
	case "k":
		return King, nil
	case "a":
		return Ace, nil
	}
	for i, n := range rankNames {
		if n == name {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, name)
}

// AllRanks returns all ranks in order (7-A)
func AllRanks() []Rank {
	return []Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
}

// Point tables, indexed by Rank.
var (
	TrumpPoints    = [8]int{Seven: 0, Eight: 0, Nine: 14, Ten: 10, Jack: 20, Queen: 3, King: 4, Ace: 11}
	NonTrumpPoints = [8]int{Seven: 0, Eight: 0, Nine: 0, Ten: 10, Jack: 2, Queen: 3, King: 4, Ace: 11}
)

// Rank orderings from weakest to strongest.
var (
	TrumpOrder    = [8]Rank{Seven, Eight, Queen, King, Ten, Ace, Nine, Jack}
	NonTrumpOrder = [8]Rank{Seven, Eight, Nine, Jack, Queen, King, Ten, Ace}
)

// Card represents a playing card
type Card struct {
	ID   string `json:"id"`
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
}

// NewCard creates a card with an id from gen.
func NewCard(suit Suit, rank Rank, gen IDGenerator) Card {
	return Card{
		ID:   gen.GenerateID(idgen.KindCard),
		Suit: suit,
		Rank: rank,
	}
}

func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// IsTrump reports whether the card belongs to the trump suit. A nil trump
// means no trump has been declared.
func (c Card) IsTrump(trump *Suit) bool {
	return trump != nil && c.Suit == *trump
}

// CardPoints returns the card's point value under the given trump.
func CardPoints(c Card, trump *Suit) int {
	if c.IsTrump(trump) {
		return TrumpPoints[c.Rank]
	}
	return NonTrumpPoints[c.Rank]
}

// CardRankOrder returns the card's strength within its ordering table. The
// result is only comparable with other calls using the same trump.
func CardRankOrder(c Card, trump *Suit) int {
	order := NonTrumpOrder
	if c.IsTrump(trump) {
		order = TrumpOrder
	}
	for i, r := range order {
		if r == c.Rank {
			return i
		}
	}
	return -1
}

// NewDeck creates the 32-card deck in suit-major, rank-minor order.
func NewDeck(gen IDGenerator) []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range AllSuits() {
		for _, rank := range AllRanks() {
			deck = append(deck, NewCard(suit, rank, gen))
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of deck. rng must return values in
// [0, 1); the same rng sequence always yields the same order.
func ShuffleDeck(deck []Card, rng func() float64) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rng() * float64(i+1))
		if j < 0 {
			j = 0
		} else if j > i {
			j = i
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewRNG returns a uniform [0, 1) source seeded with seed, for ShuffleDeck.
func NewRNG(seed int64) func() float64 {
	return rand.New(rand.NewSource(seed)).Float64
}
