package holdem

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/handeval"
)

// Winner is a player who took chips from the pot
type Winner struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
	Amount   int    `json:"amount"`
	// Hand is empty when everyone else folded
	Hand string `json:"hand,omitempty"`
}

// HandResult describes how a hand was settled
type HandResult struct {
	HandID  int       `json:"handId"`
	Pot     int       `json:"pot"`
	Winners []*Winner `json:"winners"`
	// Leftover is chips that could not be split in whole units
	Leftover int `json:"leftover"`
}

// advanceStage deals the next street, or resolves the showdown after the river
// If at most one player can still act, the board is run out
func (r *Room) advanceStage() {
	for {
		if sole := r.soleContender(); sole != nil {
			r.awardSoleContender(sole)
			return
		}

		switch r.stage {
		case StagePreFlop:
			r.stage = StageFlop
			r.dealCommunity(3)
		case StageFlop:
			r.stage = StageTurn
			r.dealCommunity(1)
		case StageTurn:
			r.stage = StageRiver
			r.dealCommunity(1)
		case StageRiver:
			r.stage = StageShowdown
			r.resolveShowdown()
			return
		default:
			return
		}

		r.newRound()
		r.currentSeat = r.nextEligibleSeat(r.dealerSeat)

		if !r.roundOver() {
			return
		}
	}
}

func (r *Room) dealCommunity(n int) {
	// burn
	r.draw()

	for i := 0; i < n; i++ {
		r.community.AddCard(r.draw())
	}
}

func (r *Room) newRound() {
	for _, p := range r.players {
		p.newRound()
	}

	r.highestBet = 0
	r.lastAggressorSeat = nil
}

// resolveShowdown ranks every contender and splits the pot between the best hands
func (r *Room) resolveShowdown() {
	contenders := r.contenders()
	if len(contenders) == 0 {
		// every contender left the room, nobody can take the pot
		r.logger.WithField("pot", r.pot).Error("showdown without contenders")
		r.finishHand(&HandResult{HandID: r.handID, Pot: r.pot, Leftover: r.pot}, r.options.ShowdownDelay)
		return
	}

	hands := make([]*handeval.RankedHand, len(contenders))
	for i, p := range contenders {
		cards := append(p.cards.Clone(), r.community...)
		hand, err := r.evaluator.Evaluate(cards)
		if err != nil {
			// should never happen, everyone holds two cards and the board is complete
			r.logger.WithError(err).WithField("player", p.ID).Error("could not evaluate hand")
			continue
		}

		hands[i] = hand
	}

	var winners []*Player
	var winningHands []*handeval.RankedHand
	for _, idx := range r.evaluator.BestOf(hands) {
		winners = append(winners, contenders[idx])
		winningHands = append(winningHands, hands[idx])
	}

	if len(winners) == 0 {
		winners = contenders
		winningHands = hands
	}

	result := r.splitPot(winners)
	for i, w := range result.Winners {
		if winningHands[i] != nil {
			w.Hand = winningHands[i].Description
		}
	}

	r.finishHand(result, r.options.ShowdownDelay)
}

// splitPot divides the pot between the winners in whole units
// The odd units go one at a time to the winners closest to the left of the dealer
func (r *Room) splitPot(winners []*Player) *HandResult {
	unit := r.options.MinUnit

	ordered := make([]*Player, len(winners))
	copy(ordered, winners)
	sort.SliceStable(ordered, func(i, j int) bool {
		return r.seatsFromDealer(ordered[i].Seat) < r.seatsFromDealer(ordered[j].Seat)
	})

	units := r.pot / unit
	share := units / len(ordered)
	oddUnits := units % len(ordered)

	result := &HandResult{
		HandID:  r.handID,
		Pot:     r.pot,
		Winners: make([]*Winner, 0, len(ordered)),
	}

	// keep the winners in the same order as they were given
	amounts := make(map[*Player]int, len(ordered))
	for i, p := range ordered {
		amount := share * unit
		if i < oddUnits {
			amount += unit
		}

		amounts[p] = amount
	}

	paid := 0
	for _, p := range winners {
		amount := amounts[p]
		p.Tokens += amount
		paid += amount
		result.Winners = append(result.Winners, &Winner{
			PlayerID: p.ID,
			Name:     p.Name,
			Seat:     p.Seat,
			Amount:   amount,
		})
	}

	result.Leftover = r.pot - paid
	return result
}

// seatsFromDealer is how many seats clockwise of the dealer the seat is, the dealer being last
func (r *Room) seatsFromDealer(seat int) int {
	return ((seat-r.dealerSeat-1)%MaxSeats + MaxSeats) % MaxSeats
}

// awardSoleContender gives the whole pot to the last player holding cards, no evaluation needed
func (r *Room) awardSoleContender(p *Player) {
	r.stage = StageShowdown
	r.finishHand(r.splitPot([]*Player{p}), r.options.FoldWinDelay)
}

func (r *Room) finishHand(result *HandResult, delay time.Duration) {
	if result.Leftover > 0 {
		r.logger.WithField("leftover", result.Leftover).Warn("pot could not be split in whole units")
	}

	r.stage = StageShowdown
	r.pot = 0
	r.lastResult = result
	r.pending = &pendingHand{
		HandID: r.handID,
		Delay:  delay,
	}

	for _, w := range result.Winners {
		r.logger.WithFields(logrus.Fields{
			"hand":   r.handID,
			"player": w.PlayerID,
			"amount": w.Amount,
			"with":   w.Hand,
		}).Info("pot awarded")

		if w.Hand != "" {
			r.record(w.PlayerID, "won %d with %s", w.Amount, w.Hand)
		} else {
			r.record(w.PlayerID, "won %d", w.Amount)
		}
	}
}

// Pending returns the hand waiting on a cooldown and how long the cooldown is
func (r *Room) Pending() (handID int, delay time.Duration, ok bool) {
	if r.pending == nil {
		return 0, 0, false
	}

	return r.pending.HandID, r.pending.Delay, true
}

// RunPending deals the next hand once the cooldown after handID is over
// If fewer than two players hold tokens, the room returns to the lobby instead.
// Returns false if nothing was pending for handID, i.e., the room moved on in the meantime
func (r *Room) RunPending(handID int) (bool, error) {
	if r.pending == nil || r.pending.HandID != handID {
		return false, nil
	}

	r.pending = nil
	if r.fundedPlayerCount() >= 2 {
		return true, r.StartHand()
	}

	r.logger.WithField("hand", handID).Info("not enough funded players, returning to the lobby")
	r.backToLobby()
	return true, nil
}
