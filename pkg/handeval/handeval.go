// Package handeval ranks seven-card hold'em hands
package handeval

import (
	"errors"
	"fmt"

	"github.com/paulhankin/poker"
	"holdem-server/pkg/deck"
)

// HandSize is the number of cards the evaluator ranks: two hole cards plus a full board
const HandSize = 7

// ErrHandSize is returned when Evaluate() is not given exactly HandSize cards
var ErrHandSize = errors.New("hand evaluation requires exactly 7 cards")

// RankedHand is the strength of a set of cards
// A higher Strength beats a lower one, equal strengths tie
type RankedHand struct {
	Strength    int    `json:"strength"`
	Description string `json:"description"`
}

// Evaluator ranks hands and picks the winners among them
type Evaluator interface {
	// Evaluate ranks the best five-card hand within the cards
	Evaluate(cards []*deck.Card) (*RankedHand, error)

	// BestOf returns the indexes of every hand sharing the maximum strength
	BestOf(hands []*RankedHand) []int
}

type evaluator struct{}

// New returns an Evaluator backed by github.com/paulhankin/poker
func New() Evaluator {
	return evaluator{}
}

func (evaluator) Evaluate(cards []*deck.Card) (*RankedHand, error) {
	if len(cards) != HandSize {
		return nil, fmt.Errorf("%w: got %d", ErrHandSize, len(cards))
	}

	var hand [HandSize]poker.Card
	for i, card := range cards {
		c, err := toPokerCard(card)
		if err != nil {
			return nil, err
		}

		hand[i] = c
	}

	desc, err := poker.Describe(hand[:])
	if err != nil {
		return nil, err
	}

	return &RankedHand{
		Strength:    int(poker.Eval7(&hand)),
		Description: desc,
	}, nil
}

func (evaluator) BestOf(hands []*RankedHand) []int {
	best := -1
	var winners []int
	for i, hand := range hands {
		if hand == nil {
			continue
		}

		if winners == nil || hand.Strength > best {
			best = hand.Strength
			winners = []int{i}
		} else if hand.Strength == best {
			winners = append(winners, i)
		}
	}

	return winners
}

// suits are ordered the way the poker package numbers them
var suitIndex = map[deck.Suit]int{
	deck.Clubs:    0,
	deck.Diamonds: 1,
	deck.Hearts:   2,
	deck.Spades:   3,
}

func toPokerCard(card *deck.Card) (c poker.Card, err error) {
	if card == nil {
		err = errors.New("cannot evaluate a nil card")
		return
	}

	suit, ok := suitIndex[card.Suit]
	if !ok {
		err = fmt.Errorf("unknown suit: %s", card.Suit)
		return
	}

	// the poker package ranks aces low (1..13)
	rank := card.Rank
	if rank == deck.Ace {
		rank = 1
	}

	c, err = poker.MakeCard(poker.Suit(suit), poker.Rank(rank))
	if err != nil {
		err = fmt.Errorf("invalid card %s: %w", deck.CardToString(card), err)
	}

	return
}
