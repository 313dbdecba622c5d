package holdem

import (
	"encoding/json"
	"fmt"
)

// Stage is where a room is in the life of a hand
type Stage int

// constants for Stage
const (
	StageLobby Stage = iota
	StagePreFlop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

func (s Stage) String() string {
	switch s {
	case StageLobby:
		return "lobby"
	case StagePreFlop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	}

	panic(fmt.Sprintf("unknown stage: %d", int(s)))
}

// IsBettingRound returns true if players can act in this stage
func (s Stage) IsBettingRound() bool {
	return s >= StagePreFlop && s <= StageRiver
}

// communityCards is how many board cards are showing in the stage
func (s Stage) communityCards() int {
	switch s {
	case StageFlop:
		return 3
	case StageTurn:
		return 4
	case StageRiver, StageShowdown:
		return 5
	}

	return 0
}

// MarshalJSON encodes the stage as its name
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
