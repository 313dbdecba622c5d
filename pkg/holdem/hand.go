package holdem

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/deck"
)

// StartHand shuffles a fresh deck, moves the button, deals and posts the blinds
// Players without tokens sit the hand out
func (r *Room) StartHand() error {
	seats := make([]int, 0, len(r.players))
	for _, p := range r.players {
		if p.Tokens > 0 {
			seats = append(seats, p.Seat)
		}
	}

	if len(seats) < 2 {
		return ErrNotEnoughPlayers
	}

	d := r.newDeck()
	if need := len(seats)*2 + boardCards; !d.CanDraw(need) {
		return fmt.Errorf("%w: %d cards left, a hand needs %d", deck.ErrEndOfDeck, d.CardsLeft(), need)
	}

	r.handID++
	r.started = true
	r.stage = StagePreFlop
	r.pot = 0
	r.highestBet = 0
	r.lastAggressorSeat = nil
	r.community = make(deck.Hand, 0, 5)
	r.pending = nil
	r.lastResult = nil
	r.deck = d

	for _, p := range r.players {
		p.resetHand()
	}

	if r.handID == 1 {
		r.dealerSeat = seats[0]
	} else {
		r.dealerSeat = seatAfter(seats, r.dealerSeat, 1)
	}

	for i := 0; i < 2; i++ {
		for _, seat := range seats {
			p := r.playerAtSeat(seat)
			p.cards.AddCard(r.draw())
		}
	}

	sb := r.playerAtSeat(seatAfter(seats, r.dealerSeat, 1))
	bb := r.playerAtSeat(seatAfter(seats, r.dealerSeat, 2))
	r.pay(sb, r.options.SmallBlind)
	r.pay(bb, r.options.BigBlind)

	r.logger.WithFields(logrus.Fields{
		"hand":    r.handID,
		"dealer":  r.dealerSeat,
		"players": len(seats),
	}).Info("dealt a new hand")
	r.record("", "hand %d dealt, the button is on seat %d", r.handID, r.dealerSeat)

	r.currentSeat = seatAfter(seats, r.dealerSeat, 3)
	if p := r.playerAtSeat(r.currentSeat); !p.CanAct() {
		r.currentSeat = r.nextEligibleSeat(r.currentSeat)
	}

	// the blinds may have put everyone all-in
	if r.roundOver() {
		r.advanceStage()
	}

	return nil
}

// boardCards is what a hand draws besides the hole cards: 5 community cards and 3 burns
const boardCards = 5 + 3

// draw takes the next card off the deck
// StartHand checked the deck covers the whole hand
func (r *Room) draw() *deck.Card {
	card, err := r.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("room %s, hand %d: %v", r.id, r.handID, err))
	}

	return card
}

// seatAfter returns the seat n places clockwise of from
// seats must be sorted, from does not have to be one of them
func seatAfter(seats []int, from, n int) int {
	idx := len(seats) - 1
	for i, seat := range seats {
		if seat == from {
			idx = i
			break
		}

		if seat > from {
			idx = i - 1
			break
		}
	}

	return seats[((idx+n)%len(seats)+len(seats))%len(seats)]
}

// nextEligibleSeat walks clockwise from fromSeat and returns the first player who can act
// If nobody can act, fromSeat is returned
func (r *Room) nextEligibleSeat(fromSeat int) int {
	n := len(r.players)
	if n == 0 {
		return fromSeat
	}

	start := 0
	for i, p := range r.players {
		if p.Seat > fromSeat {
			start = i
			break
		}
	}

	for k := 0; k < n; k++ {
		p := r.players[(start+k)%n]
		if p.CanAct() {
			return p.Seat
		}
	}

	return fromSeat
}
