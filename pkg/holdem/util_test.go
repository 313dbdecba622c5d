package holdem

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"holdem-server/internal/rng"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/handeval"
)

// newTestRoom seats one player per name, player ids are p0, p1, ...
func newTestRoom(t *testing.T, names ...string) *Room {
	t.Helper()

	r, err := NewRoom(logrus.StandardLogger(), "test", DefaultOptions(), handeval.New())
	require.NoError(t, err)

	for i, name := range names {
		_, err := r.Join(playerID(i), name)
		require.NoError(t, err)
	}

	return r
}

func playerID(i int) string {
	return fmt.Sprintf("p%d", i)
}

// stackDeck makes every new hand deal the cards in the given order
func stackDeck(r *Room, cards string) {
	r.newDeck = func() *deck.Deck {
		d := deck.New()
		d.Cards = deck.CardsFromString(cards)
		return d
	}
}

// seedDeck makes every new hand deal from a deterministic shuffle
func seedDeck(r *Room, seed int64) {
	r.newDeck = func() *deck.Deck {
		d := deck.New()
		d.SetGenerator(rng.NewSeeded(seed))
		d.Shuffle()
		return d
	}
}

func mustPlayer(t *testing.T, r *Room, id string) *Player {
	t.Helper()
	p, ok := r.Player(id)
	require.True(t, ok, "player %s not found", id)
	return p
}

func assertAct(t *testing.T, r *Room, id string, action Action, amount int, msgAndArgs ...interface{}) {
	t.Helper()
	assert.NoError(t, r.Act(id, Move{Action: action, Amount: amount}), msgAndArgs...)
	assertInvariants(t, r)
}

func assertActFailed(t *testing.T, r *Room, id string, action Action, amount int, expected error) {
	t.Helper()

	pot, highest, current := r.pot, r.highestBet, r.currentSeat
	err := r.Act(id, Move{Action: action, Amount: amount})
	assert.Equal(t, expected, err)
	assert.Equal(t, pot, r.pot, "pot must not change")
	assert.Equal(t, highest, r.highestBet, "highest bet must not change")
	assert.Equal(t, current, r.currentSeat, "current seat must not change")
}

// assertInvariants checks what must hold after every mutation
func assertInvariants(t *testing.T, r *Room) {
	t.Helper()
	unit := r.options.MinUnit

	assert.Equal(t, 0, r.pot%unit, "pot must be a multiple of the unit")
	for _, p := range r.players {
		assert.GreaterOrEqual(t, p.Tokens, 0, "stack of %s", p.ID)
		assert.Equal(t, 0, p.Tokens%unit, "stack of %s", p.ID)
	}

	if r.stage == StageShowdown {
		// a hand won by folds ends before the board is complete
		assert.LessOrEqual(t, len(r.community), 5)
	} else {
		assert.Equal(t, r.stage.communityCards(), len(r.community), "community cards in %s", r.stage)
	}

	if !r.stage.IsBettingRound() {
		return
	}

	contributed := 0
	highest := 0
	for _, p := range r.players {
		contributed += p.contributed
		if p.HasCards() && p.betThisRound > highest {
			highest = p.betThisRound
		}
	}

	assert.Equal(t, contributed, r.pot, "pot must equal the contributions")
	assert.Equal(t, highest, r.highestBet, "highest bet")

	if len(r.actors()) > 0 {
		p := r.playerAtSeat(r.currentSeat)
		if assert.NotNil(t, p, "current seat %d is empty", r.currentSeat) {
			assert.True(t, p.CanAct(), "current seat %d cannot act", r.currentSeat)
		}
	}
}

func totalTokens(r *Room) int {
	total := r.pot
	for _, p := range r.players {
		total += p.Tokens
	}

	return total
}
