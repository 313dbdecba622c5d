package holdem

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is a betting decision
type Action int

// action constants
const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

var actionsByName = map[string]Action{
	"fold":   Fold,
	"check":  Check,
	"call":   Call,
	"bet":    Bet,
	"raise":  Raise,
	"allin":  AllIn,
	"all-in": AllIn,
}

// ActionFromString returns an action for the given string
func ActionFromString(s string) (Action, error) {
	if a, ok := actionsByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}

	return 0, fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	}

	panic(fmt.Sprintf("unknown action: %d", int(a)))
}

// MarshalJSON encodes the action as its name
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called %d", amount)
	case Bet:
		return fmt.Sprintf("bet %d", amount)
	case Raise:
		return fmt.Sprintf("raised %d", amount)
	case AllIn:
		return fmt.Sprintf("went all-in for %d", amount)
	}

	return ""
}

// Move is an action with its amount
// Amount only matters for Bet (the opening bet) and Raise (the size over the call)
type Move struct {
	Action Action
	Amount int
}

// NormalizeAmount floors the amount to a multiple of unit, negative amounts become zero
func NormalizeAmount(amount, unit int) int {
	if amount <= 0 || unit <= 0 {
		return 0
	}

	return amount / unit * unit
}
