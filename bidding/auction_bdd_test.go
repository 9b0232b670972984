package bidding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"belote/game"
)

var rejectionNames = map[string]error{
	"round closed":        ErrRoundClosed,
	"not your turn":       ErrNotYourTurn,
	"bid too low":         ErrBidTooLow,
	"no standing bid":     ErrNoStandingBid,
	"own team coinche":    ErrOwnTeamCoinche,
	"already coinched":    ErrAlreadyCoinched,
	"not coinched":        ErrNotCoinched,
	"opponent surcoinche": ErrOpponentSurcoinche,
	"already surcoinched": ErrAlreadySurcoinched,
}

type auctionWorld struct {
	round   Round
	lastErr error
}

func (w *auctionWorld) anAuctionOpenedBySeat(seat int) error {
	r, err := NewRound(game.Position(seat))
	if err != nil {
		return err
	}
	w.round = r
	return nil
}

func (w *auctionWorld) theBidsArePlaced(list string) error {
	for _, text := range strings.Split(list, ",") {
		b, err := ParseBid(w.round.CurrentBidder(), text)
		if err != nil {
			return err
		}
		next, err := PlaceBid(w.round, b)
		if err != nil {
			return fmt.Errorf("bid %q by seat %d: %w", text, b.Bidder(), err)
		}
		w.round = next
	}
	return nil
}

func (w *auctionWorld) seatTriesToBid(seat int, text string) error {
	b, err := ParseBid(game.Position(seat), text)
	if err != nil {
		return err
	}
	next, err := PlaceBid(w.round, b)
	w.lastErr = err
	if err == nil {
		w.round = next
	}
	return nil
}

func (w *auctionWorld) theBidIsRejectedAs(name string) error {
	want, ok := rejectionNames[name]
	if !ok {
		return fmt.Errorf("unknown rejection %q", name)
	}
	if !errors.Is(w.lastErr, want) {
		return fmt.Errorf("got error %v, want %v", w.lastErr, want)
	}
	if !errors.Is(w.lastErr, game.ErrIllegalAction) {
		return fmt.Errorf("error %v is not an illegal action", w.lastErr)
	}
	return nil
}

func (w *auctionWorld) theBidIsAccepted() error {
	if w.lastErr != nil {
		return fmt.Errorf("bid rejected: %w", w.lastErr)
	}
	return nil
}

func (w *auctionWorld) theAuctionIs(status string) error {
	if got := w.round.Status(); got != Status(status) {
		return fmt.Errorf("status = %s, want %s", got, status)
	}
	return nil
}

func (w *auctionWorld) seatIsToSpeak(seat int) error {
	if got := w.round.CurrentBidder(); got != game.Position(seat) {
		return fmt.Errorf("seat %d is to speak, want %d", got, seat)
	}
	return nil
}

func (w *auctionWorld) theContractIs(value int, suitName string, seat, multiplier int) error {
	suit, err := game.ParseSuit(suitName)
	if err != nil {
		return err
	}
	c, ok := GetContract(w.round)
	if !ok {
		return fmt.Errorf("no contract, auction is %s", w.round.Status())
	}
	want := Contract{
		Suit:       suit,
		Value:      value,
		Bidder:     game.Position(seat),
		Side:       game.Position(seat).Side(),
		Multiplier: multiplier,
	}
	if c != want {
		return fmt.Errorf("contract = %+v, want %+v", c, want)
	}
	return nil
}

func (w *auctionWorld) thereIsNoContract() error {
	if c, ok := GetContract(w.round); ok {
		return fmt.Errorf("unexpected contract %s", c)
	}
	return nil
}

func InitializeAuctionScenario(sc *godog.ScenarioContext) {
	w := &auctionWorld{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*w = auctionWorld{}
		return ctx, nil
	})

	sc.Step(`^an auction opened by seat (\d+)$`, w.anAuctionOpenedBySeat)
	sc.Step(`^the bids "([^"]*)" are placed$`, w.theBidsArePlaced)
	sc.Step(`^seat (\d+) tries to bid "([^"]*)"$`, w.seatTriesToBid)
	sc.Step(`^the bid is rejected as "([^"]*)"$`, w.theBidIsRejectedAs)
	sc.Step(`^the bid is accepted$`, w.theBidIsAccepted)
	sc.Step(`^the auction is "([^"]*)"$`, w.theAuctionIs)
	sc.Step(`^seat (\d+) is to speak$`, w.seatIsToSpeak)
	sc.Step(`^the contract is (\d+) (\w+) by seat (\d+) with multiplier (\d+)$`, w.theContractIs)
	sc.Step(`^there is no contract$`, w.thereIsNoContract)
}

func TestAuctionFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "auction",
		ScenarioInitializer: InitializeAuctionScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
