package game

import "fmt"

// HandSize is the number of cards each player receives.
const HandSize = DeckSize / NumPositions

// DealCards deals deck round-robin: card i goes to players[i%4]. The
// returned players are in the same order as the input.
func DealCards(deck []Card, players []Player) ([NumPositions]Player, error) {
	var dealt [NumPositions]Player
	if len(deck) != DeckSize {
		return dealt, fmt.Errorf("%w: got %d", ErrDeckSize, len(deck))
	}
	if len(players) != NumPositions {
		return dealt, fmt.Errorf("%w: got %d", ErrPlayerCount, len(players))
	}

	var hands [NumPositions][]Card
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for i, card := range deck {
		hands[i%NumPositions] = append(hands[i%NumPositions], card)
	}

	for i, p := range players {
		if len(hands[i]) != HandSize {
			return dealt, fmt.Errorf("%w: hand %d has %d cards", ErrInvariant, i, len(hands[i]))
		}
		dealt[i] = SetPlayerHand(p, hands[i])
	}
	return dealt, nil
}
