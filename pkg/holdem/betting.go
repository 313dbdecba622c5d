package holdem

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Act applies a betting decision for the player
// Illegal moves return an error and leave the room untouched
func (r *Room) Act(playerID string, move Move) error {
	if !r.started || !r.stage.IsBettingRound() {
		return ErrNotStarted
	}

	p := r.playerByID(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}

	if p.Seat != r.currentSeat {
		return ErrNotYourTurn
	}

	if !p.CanAct() {
		return ErrCannotAct
	}

	unit := r.options.MinUnit
	amount := NormalizeAmount(move.Amount, unit)
	toCall := r.highestBet - p.betThisRound
	if toCall < 0 {
		toCall = 0
	}

	paid := 0
	switch move.Action {
	case Fold:
		p.folded = true
	case Check:
		if toCall != 0 {
			return ErrIllegalAction
		}
	case Call:
		paid = r.pay(p, toCall)
	case Bet:
		if r.highestBet != 0 {
			return ErrIllegalAction
		}

		if amount < unit {
			return ErrBelowMinimum
		}

		paid = r.pay(p, amount)
	case Raise:
		if r.highestBet == 0 {
			return ErrIllegalAction
		}

		if amount < unit {
			return ErrBelowMinimum
		}

		// the stack caps the payment, adding first could overflow
		want := p.Tokens
		if amount < p.Tokens-toCall {
			want = toCall + amount
		}

		paid = r.pay(p, want)
	case AllIn:
		paid = r.pay(p, p.Tokens)
	default:
		return fmt.Errorf("unknown action: %d", int(move.Action))
	}

	p.acted = true

	r.logger.WithFields(logrus.Fields{
		"hand":   r.handID,
		"player": p.ID,
		"stage":  r.stage.String(),
	}).Debug(move.Action.LogMessage(paid))
	r.record(p.ID, "%s", move.Action.LogMessage(paid))

	r.afterAction()
	return nil
}

// pay moves up to amount from the player's stack into the pot
// The amount actually paid is returned
func (r *Room) pay(p *Player, amount int) int {
	amount = NormalizeAmount(amount, r.options.MinUnit)
	if p == nil || amount <= 0 {
		return 0
	}

	paid := amount
	if p.Tokens < paid {
		paid = p.Tokens
	}

	p.Tokens -= paid
	p.betThisRound += paid
	p.contributed += paid
	r.pot += paid

	if p.Tokens == 0 {
		p.allIn = true
	}

	// compare what is in front of the player, a short all-in must not raise the bet
	if p.betThisRound > r.highestBet {
		r.highestBet = p.betThisRound
		seat := p.Seat
		r.lastAggressorSeat = &seat
	}

	return paid
}

// afterAction ends the hand, ends the round, or passes the turn
func (r *Room) afterAction() {
	if sole := r.soleContender(); sole != nil {
		r.awardSoleContender(sole)
		return
	}

	if r.roundOver() {
		r.advanceStage()
		return
	}

	r.currentSeat = r.nextEligibleSeat(r.currentSeat)
}

// contenders returns every player who can still win the pot
func (r *Room) contenders() []*Player {
	contenders := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.IsContender() {
			contenders = append(contenders, p)
		}
	}

	return contenders
}

// actors returns every contender who is not all-in
func (r *Room) actors() []*Player {
	actors := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.CanAct() {
			actors = append(actors, p)
		}
	}

	return actors
}

func (r *Room) soleContender() *Player {
	if c := r.contenders(); len(c) == 1 {
		return c[0]
	}

	return nil
}

// AllBetsSettled returns true if every contender who is not all-in has matched the highest bet
func (r *Room) AllBetsSettled() bool {
	for _, p := range r.actors() {
		if p.betThisRound != r.highestBet {
			return false
		}
	}

	return true
}

// roundOver returns true if the betting round is complete
// Bets must be settled and every player who can act must have had a turn. A lone player
// left to act who already matches the bet has nobody to bet against.
func (r *Room) roundOver() bool {
	actors := r.actors()
	switch len(actors) {
	case 0:
		return true
	case 1:
		return actors[0].betThisRound >= r.highestBet
	}

	if !r.AllBetsSettled() {
		return false
	}

	for _, p := range actors {
		if !p.acted {
			return false
		}
	}

	return true
}
