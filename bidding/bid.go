// Package bidding implements the Coinche auction: turn order, bid
// legality, coinche/surcoinche escalation and contract resolution.
package bidding

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"belote/game"
)

// BidValues is the ladder of values a suit bid may declare, lowest first.
// The top rung is capot (all tricks).
var BidValues = [...]int{80, 90, 100, 110, 120, 130, 140, 150, 160, Capot}

// Capot is the value of a bid to take every trick.
const Capot = 250

// ladderIndex returns the rung of v, or -1 if v is not on the ladder.
func ladderIndex(v int) int {
	for i, lv := range BidValues {
		if lv == v {
			return i
		}
	}
	return -1
}

// IsLadderValue reports whether v is a legal suit bid value.
func IsLadderValue(v int) bool {
	return ladderIndex(v) >= 0
}

// Kind tags the bid variants.
type Kind string

const (
	KindPass       Kind = "pass"
	KindSuit       Kind = "suit"
	KindCoinche    Kind = "coinche"
	KindSurcoinche Kind = "surcoinche"
)

// Bid is one of PassBid, SuitBid, CoincheBid or SurcoincheBid.
type Bid interface {
	Kind() Kind
	Bidder() game.Position
	isBid()
}

// PassBid declines to bid this turn.
type PassBid struct {
	Position game.Position
}

// SuitBid proposes a trump suit and a contract value.
type SuitBid struct {
	Position game.Position
	Suit     game.Suit
	Value    int
}

// CoincheBid doubles the opponents' standing bid.
type CoincheBid struct {
	Position game.Position
}

// SurcoincheBid redoubles after the opponents coinched.
type SurcoincheBid struct {
	Position game.Position
}

func (b PassBid) Kind() Kind { return KindPass }
func (b SuitBid) Kind() Kind { return KindSuit }
func (b CoincheBid) Kind() Kind { return KindCoinche }
func (b SurcoincheBid) Kind() Kind { return KindSurcoinche }

func (b PassBid) Bidder() game.Position { return b.Position }
func (b SuitBid) Bidder() game.Position { return b.Position }
func (b CoincheBid) Bidder() game.Position { return b.Position }
func (b SurcoincheBid) Bidder() game.Position { return b.Position }

func (PassBid) isBid() {}
func (SuitBid) isBid() {}
func (CoincheBid) isBid() {}
func (SurcoincheBid) isBid() {}

func NewPassBid(pos game.Position) PassBid {
	return PassBid{Position: pos}
}

// NewSuitBid fails if value is not on the ladder or suit is unknown.
func NewSuitBid(pos game.Position, suit game.Suit, value int) (SuitBid, error) {
	if !suit.Valid() {
		return SuitBid{}, fmt.Errorf("%w: %d", game.ErrUnknownSuit, int(suit))
	}
	if !IsLadderValue(value) {
		return SuitBid{}, fmt.Errorf("%w: %d", ErrInvalidBidValue, value)
	}
	return SuitBid{Position: pos, Suit: suit, Value: value}, nil
}

func NewCoincheBid(pos game.Position) CoincheBid {
	return CoincheBid{Position: pos}
}

func NewSurcoincheBid(pos game.Position) SurcoincheBid {
	return SurcoincheBid{Position: pos}
}

// NewBid builds a bid from its kind. suit and value are only read for
// KindSuit.
func NewBid(kind Kind, pos game.Position, suit game.Suit, value int) (Bid, error) {
	switch kind {
	case KindPass:
		return NewPassBid(pos), nil
	case KindSuit:
		sb, err := NewSuitBid(pos, suit, value)
		if err != nil {
			return nil, err
		}
		return sb, nil
	case KindCoinche:
		return NewCoincheBid(pos), nil
	case KindSurcoinche:
		return NewSurcoincheBid(pos), nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownBid, kind)
	}
}

// ParseBid reads "pass", "coinche", "surcoinche" or "<suit>:<value>"
// (for example "hearts:90" or "spades:capot").
func ParseBid(pos game.Position, text string) (Bid, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	switch Kind(text) {
	case KindPass, KindCoinche, KindSurcoinche:
		return NewBid(Kind(text), pos, 0, 0)
	}

	suitName, valueText, ok := strings.Cut(text, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBid, text)
	}
	suit, err := game.ParseSuit(suitName)
	if err != nil {
		return nil, err
	}
	value := Capot
	if valueText != "capot" {
		value, err = strconv.Atoi(valueText)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBidValue, valueText)
		}
	}
	return NewBid(KindSuit, pos, suit, value)
}

// FormatBid is the inverse of ParseBid.
func FormatBid(b Bid) string {
	if sb, ok := b.(SuitBid); ok {
		if sb.Value == Capot {
			return sb.Suit.String() + ":capot"
		}
		return sb.Suit.String() + ":" + strconv.Itoa(sb.Value)
	}
	return string(b.Kind())
}

type wireBid struct {
	Kind   Kind          `json:"kind"`
	Bidder game.Position `json:"bidder"`
	Suit   *game.Suit    `json:"suit,omitempty"`
	Value  int           `json:"value,omitempty"`
}

func (b PassBid) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireBid{Kind: KindPass, Bidder: b.Position})
}

func (b SuitBid) MarshalJSON() ([]byte, error) {
	suit := b.Suit
	return json.Marshal(wireBid{Kind: KindSuit, Bidder: b.Position, Suit: &suit, Value: b.Value})
}

func (b CoincheBid) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireBid{Kind: KindCoinche, Bidder: b.Position})
}

func (b SurcoincheBid) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireBid{Kind: KindSurcoinche, Bidder: b.Position})
}

// UnmarshalBid decodes the JSON produced by a bid's MarshalJSON.
func UnmarshalBid(data []byte) (Bid, error) {
	var w wireBid
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.Kind == KindSuit && w.Suit == nil {
		return nil, fmt.Errorf("%w: suit bid without suit", ErrUnknownBid)
	}
	var suit game.Suit
	if w.Suit != nil {
		suit = *w.Suit
	}
	return NewBid(w.Kind, w.Bidder, suit, w.Value)
}
