package bidding

import (
	"encoding/json"
	"errors"
	"testing"

	"belote/game"
)

func TestBidValuesLadder(t *testing.T) {
	for i := 1; i < len(BidValues); i++ {
		if BidValues[i] <= BidValues[i-1] {
			t.Errorf("ladder not ascending at %d: %d <= %d", i, BidValues[i], BidValues[i-1])
		}
	}
	if BidValues[0] != 80 || BidValues[len(BidValues)-1] != Capot {
		t.Errorf("ladder = %v", BidValues)
	}
	for _, v := range []int{0, 75, 85, 170, 200} {
		if IsLadderValue(v) {
			t.Errorf("IsLadderValue(%d) = true", v)
		}
	}
}

func TestParseBid(t *testing.T) {
	tests := []struct {
		text string
		want Bid
	}{
		{text: "pass", want: PassBid{Position: 2}},
		{text: " Coinche ", want: CoincheBid{Position: 2}},
		{text: "surcoinche", want: SurcoincheBid{Position: 2}},
		{text: "hearts:80", want: SuitBid{Position: 2, Suit: game.Hearts, Value: 80}},
		{text: "Spades:160", want: SuitBid{Position: 2, Suit: game.Spades, Value: 160}},
		{text: "clubs:capot", want: SuitBid{Position: 2, Suit: game.Clubs, Value: Capot}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseBid(2, tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseBid(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
			again, err := ParseBid(2, FormatBid(got))
			if err != nil || again != got {
				t.Fatalf("FormatBid round trip: %#v, %v", again, err)
			}
		})
	}
}

func TestParseBidErrors(t *testing.T) {
	tests := []struct {
		text string
		want error
	}{
		{text: "double", want: ErrUnknownBid},
		{text: "hearts", want: ErrUnknownBid},
		{text: "stars:80", want: game.ErrUnknownSuit},
		{text: "hearts:85", want: ErrInvalidBidValue},
		{text: "hearts:lots", want: ErrInvalidBidValue},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseBid(0, tt.text)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, game.ErrValidation) {
				t.Fatalf("error %v is not a validation error", err)
			}
			if got != nil {
				t.Fatalf("got bid %#v alongside error", got)
			}
		})
	}
}

func TestNewBid(t *testing.T) {
	b, err := NewBid(KindSuit, 1, game.Diamonds, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Kind() != KindSuit || b.Bidder() != 1 {
		t.Fatalf("bid = %#v", b)
	}
	if _, err := NewBid("raise", 1, 0, 0); !errors.Is(err, ErrUnknownBid) {
		t.Fatalf("error = %v, want ErrUnknownBid", err)
	}
}

func TestBidJSON(t *testing.T) {
	tests := []struct {
		bid  Bid
		want string
	}{
		{bid: NewPassBid(0), want: `{"kind":"pass","bidder":0}`},
		{bid: SuitBid{Position: 3, Suit: game.Clubs, Value: 120}, want: `{"kind":"suit","bidder":3,"suit":"clubs","value":120}`},
		{bid: NewCoincheBid(1), want: `{"kind":"coinche","bidder":1}`},
		{bid: NewSurcoincheBid(2), want: `{"kind":"surcoinche","bidder":2}`},
	}
	for _, tt := range tests {
		t.Run(string(tt.bid.Kind()), func(t *testing.T) {
			data, err := json.Marshal(tt.bid)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Fatalf("json = %s, want %s", data, tt.want)
			}
			back, err := UnmarshalBid(data)
			if err != nil {
				t.Fatalf("UnmarshalBid: %v", err)
			}
			if back != tt.bid {
				t.Fatalf("decoded %#v, want %#v", back, tt.bid)
			}
		})
	}

	if _, err := UnmarshalBid([]byte(`{"kind":"suit","bidder":0,"value":80}`)); !errors.Is(err, ErrUnknownBid) {
		t.Fatalf("suit bid without suit: error = %v", err)
	}
}

func TestContractString(t *testing.T) {
	c := Contract{Suit: game.Spades, Value: 100, Bidder: 1, Side: game.SideEastWest, Multiplier: MultiplierSurcoinched}
	if got, want := c.String(), "100 spades by seat 1 (east-west), surcoinched"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if c.Stake() != 400 || c.IsCapot() {
		t.Fatalf("stake = %d capot = %v", c.Stake(), c.IsCapot())
	}
	if trump := c.Trump(); trump == nil || *trump != game.Spades {
		t.Fatalf("Trump() = %v", trump)
	}
}
