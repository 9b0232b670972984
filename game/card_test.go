package game

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"belote/idgen"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck(idgen.New(idgen.WithSeed(1)))

	// Should have exactly 32 cards
	if len(deck) != DeckSize {
		t.Fatalf("Expected %d cards, got %d", DeckSize, len(deck))
	}

	// All ids should be unique
	seen := make(map[string]bool)
	for _, card := range deck {
		if seen[card.ID] {
			t.Errorf("Duplicate card id found: %s", card.ID)
		}
		seen[card.ID] = true
	}

	// Suit-major, rank-minor, one card per combination
	for i, card := range deck {
		wantSuit := AllSuits()[i/8]
		wantRank := AllRanks()[i%8]
		if card.Suit != wantSuit || card.Rank != wantRank {
			t.Errorf("card %d: got %s, want %s of %s", i, card, wantRank, wantSuit)
		}
	}
}

func TestNewDeckFreshIDs(t *testing.T) {
	gen := idgen.New(idgen.WithSeed(5))
	a := NewDeck(gen)
	b := NewDeck(gen)
	for i := range a {
		if a[i].ID == b[i].ID {
			t.Fatalf("card %d reused id %s across decks", i, a[i].ID)
		}
	}
}

func TestPointTables(t *testing.T) {
	trumpSum, nonTrumpSum := 0, 0
	for _, r := range AllRanks() {
		if TrumpPoints[r] < NonTrumpPoints[r] {
			t.Errorf("rank %s: trump %d < non-trump %d", r, TrumpPoints[r], NonTrumpPoints[r])
		}
		trumpSum += TrumpPoints[r]
		nonTrumpSum += NonTrumpPoints[r]
	}
	if trumpSum != 62 {
		t.Errorf("trump points sum to %d, want 62", trumpSum)
	}
	if nonTrumpSum != 30 {
		t.Errorf("non-trump points sum to %d, want 30", nonTrumpSum)
	}
}

func TestOrdersArePermutations(t *testing.T) {
	for name, order := range map[string][8]Rank{"trump": TrumpOrder, "non-trump": NonTrumpOrder} {
		seen := make(map[Rank]bool)
		for _, r := range order {
			if !r.Valid() {
				t.Errorf("%s order: invalid rank %d", name, r)
			}
			if seen[r] {
				t.Errorf("%s order: duplicate rank %s", name, r)
			}
			seen[r] = true
		}
		if len(seen) != len(AllRanks()) {
			t.Errorf("%s order covers %d ranks, want %d", name, len(seen), len(AllRanks()))
		}
	}
}

func TestCardPoints(t *testing.T) {
	gen := idgen.New(idgen.WithSeed(1))
	hearts, spades := Hearts, Spades
	tests := []struct {
		name  string
		card  Card
		trump *Suit
		want  int
	}{
		{name: "jack of trump", card: NewCard(Hearts, Jack, gen), trump: &hearts, want: 20},
		{name: "nine of trump", card: NewCard(Hearts, Nine, gen), trump: &hearts, want: 14},
		{name: "jack off trump", card: NewCard(Hearts, Jack, gen), trump: &spades, want: 2},
		{name: "nine off trump", card: NewCard(Hearts, Nine, gen), trump: &spades, want: 0},
		{name: "ace no trump", card: NewCard(Clubs, Ace, gen), trump: nil, want: 11},
		{name: "jack no trump", card: NewCard(Spades, Jack, gen), trump: nil, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CardPoints(tt.card, tt.trump); got != tt.want {
				t.Fatalf("CardPoints() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCardRankOrder(t *testing.T) {
	gen := idgen.New(idgen.WithSeed(1))
	clubs := Clubs

	jack := NewCard(Clubs, Jack, gen)
	nine := NewCard(Clubs, Nine, gen)
	ace := NewCard(Clubs, Ace, gen)

	// Under trump: J > 9 > A
	if !(CardRankOrder(jack, &clubs) > CardRankOrder(nine, &clubs)) {
		t.Error("trump jack should outrank trump nine")
	}
	if !(CardRankOrder(nine, &clubs) > CardRankOrder(ace, &clubs)) {
		t.Error("trump nine should outrank trump ace")
	}

	// Without trump: A > J > 9
	if !(CardRankOrder(ace, nil) > CardRankOrder(jack, nil)) {
		t.Error("plain ace should outrank plain jack")
	}
	if !(CardRankOrder(jack, nil) > CardRankOrder(nine, nil)) {
		t.Error("plain jack should outrank plain nine")
	}

	if got := CardRankOrder(jack, &clubs); got != 7 {
		t.Errorf("trump jack order = %d, want 7", got)
	}
	if got := CardRankOrder(NewCard(Hearts, Seven, gen), &clubs); got != 0 {
		t.Errorf("plain seven order = %d, want 0", got)
	}
}

func TestShuffleDeckIsPermutation(t *testing.T) {
	deck := NewDeck(idgen.New(idgen.WithSeed(2)))
	before := make([]Card, len(deck))
	copy(before, deck)

	shuffled := ShuffleDeck(deck, NewRNG(99))

	for i := range deck {
		if deck[i] != before[i] {
			t.Fatalf("input deck modified at %d", i)
		}
	}

	ids := func(cards []Card) []string {
		out := make([]string, len(cards))
		for i, c := range cards {
			out[i] = c.ID
		}
		sort.Strings(out)
		return out
	}
	a, b := ids(deck), ids(shuffled)
	if len(a) != len(b) {
		t.Fatalf("shuffled deck has %d cards, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("card multiset differs at %d: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestShuffleDeckDeterministic(t *testing.T) {
	deck := NewDeck(idgen.New(idgen.WithSeed(3)))

	a := ShuffleDeck(deck, NewRNG(11))
	b := ShuffleDeck(deck, NewRNG(11))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed gave different order at %d", i)
		}
	}

	c := ShuffleDeck(deck, NewRNG(12))
	sameOrder := true
	for i := range a {
		if a[i].ID != c[i].ID {
			sameOrder = false
			break
		}
	}
	if sameOrder {
		t.Error("Two seeds produced identical order - shuffle may not be working")
	}
}

func TestShuffleDeckSwapSequence(t *testing.T) {
	gen := idgen.New(idgen.WithSeed(4))
	deck := []Card{NewCard(Hearts, Seven, gen), NewCard(Hearts, Eight, gen), NewCard(Hearts, Nine, gen)}

	// rng always 0: i=2 swaps with 0, then i=1 swaps with 0.
	got := ShuffleDeck(deck, func() float64 { return 0 })
	want := []Card{deck[1], deck[2], deck[0]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}

	// rng just below 1 always picks j = i: identity.
	got = ShuffleDeck(deck, func() float64 { return 0.999999 })
	for i := range deck {
		if got[i] != deck[i] {
			t.Fatalf("position %d: got %s, want %s", i, got[i], deck[i])
		}
	}
}

func TestShuffleDeckSmall(t *testing.T) {
	calls := 0
	rng := func() float64 { calls++; return 0.5 }

	if got := ShuffleDeck(nil, rng); len(got) != 0 {
		t.Errorf("empty deck: got %d cards", len(got))
	}
	one := []Card{NewCard(Spades, Ace, idgen.New())}
	if got := ShuffleDeck(one, rng); len(got) != 1 || got[0] != one[0] {
		t.Errorf("single card deck changed: %v", got)
	}
	if calls != 0 {
		t.Errorf("rng called %d times for trivial decks", calls)
	}
}

func TestParseSuitAndRank(t *testing.T) {
	for _, s := range AllSuits() {
		got, err := ParseSuit(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSuit(%q) = %v, %v", s.String(), got, err)
		}
	}
	for _, r := range AllRanks() {
		got, err := ParseRank(r.String())
		if err != nil || got != r {
			t.Errorf("ParseRank(%q) = %v, %v", r.String(), got, err)
		}
	}
	if got, _ := ParseRank("Q"); got != Queen {
		t.Errorf("ParseRank(Q) = %v", got)
	}
	if _, err := ParseSuit("stars"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseSuit(stars) error = %v, want validation error", err)
	}
	if _, err := ParseRank("2"); !errors.Is(err, ErrUnknownRank) {
		t.Errorf("ParseRank(2) error = %v, want ErrUnknownRank", err)
	}
}

func TestCardJSON(t *testing.T) {
	card := Card{ID: "card_x", Suit: Diamonds, Rank: Queen}
	data, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"id":"card_x","suit":"diamonds","rank":"queen"}` {
		t.Fatalf("unexpected json: %s", data)
	}
	var back Card
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != card {
		t.Fatalf("got %+v, want %+v", back, card)
	}
}
