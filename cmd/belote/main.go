package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/pterm/pterm"

	"belote/bidding"
	"belote/game"
	"belote/idgen"
)

var seatNames = [game.NumPositions]string{"North", "East", "South", "West"}

func main() {
	seed := flag.Int64("seed", 0, "Deal seed (0 picks one from the clock)")
	first := flag.Int("first", 0, "Seat that speaks first (0-3)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-seed N] [-first P] bid...\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "each bid is pass, coinche, surcoinche or <suit>:<value>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	firstSeat := game.Position(*first)
	if !firstSeat.Valid() {
		pterm.Error.Printfln("first seat %d out of range", *first)
		os.Exit(2)
	}

	dealer := (firstSeat + game.NumPositions - 1) % game.NumPositions
	players, err := dealSeeded(*seed, dealer)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Info.Printfln("Seed %d", *seed)
	printHands(players)

	round, err := replay(firstSeat, flag.Args())
	printAuction(round)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	printOutcome(round)
}

// dealSeeded deals a reproducible hand with dealer holding the deal.
func dealSeeded(seed int64, dealer game.Position) ([game.NumPositions]game.Player, error) {
	ids := idgen.New(idgen.WithSeed(seed))

	players := make([]game.Player, 0, game.NumPositions)
	for i := 0; i < game.NumPositions; i++ {
		p, err := game.NewPlayer(seatNames[i], game.Position(i), ids)
		if err != nil {
			return [game.NumPositions]game.Player{}, err
		}
		players = append(players, p)
	}

	deck := game.ShuffleDeck(game.NewDeck(ids), game.NewRNG(seed))
	// Cut so the seat after the dealer receives the first card.
	offset := int(dealer.Next())
	rotated := append(slices.Clone(players[offset:]), players[:offset]...)
	dealt, err := game.DealCards(deck, rotated)
	if err != nil {
		return [game.NumPositions]game.Player{}, err
	}

	var bySeat [game.NumPositions]game.Player
	for _, p := range dealt {
		bySeat[p.Position] = p
	}
	return bySeat, nil
}

// replay places texts in turn order starting at first. It returns the
// round as far as it got along with the first error.
func replay(first game.Position, texts []string) (bidding.Round, error) {
	round, err := bidding.NewRound(first)
	if err != nil {
		return round, err
	}
	for i, text := range texts {
		b, err := bidding.ParseBid(round.CurrentBidder(), text)
		if err != nil {
			return round, fmt.Errorf("bid %d: %w", i+1, err)
		}
		next, err := bidding.PlaceBid(round, b)
		if err != nil {
			return round, fmt.Errorf("bid %d (%s by %s): %w", i+1, text, seatNames[b.Bidder()], err)
		}
		round = next
	}
	return round, nil
}

// sortHand orders cards by suit, then by plain-suit strength.
func sortHand(cards []game.Card) []game.Card {
	out := slices.Clone(cards)
	slices.SortFunc(out, func(a, b game.Card) int {
		if a.Suit != b.Suit {
			return int(a.Suit) - int(b.Suit)
		}
		return game.CardRankOrder(b, nil) - game.CardRankOrder(a, nil)
	})
	return out
}
