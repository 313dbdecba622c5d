package room

import (
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/protocol"
)

// ErrRoomBusy is returned when a room cannot queue any more requests
const ErrRoomBusy = holdem.UserError("the room is busy, try again")

// reasons an action was dropped
const (
	dropUnknown    = "unknown_action"
	dropNotPlaying = "not_playing"
	dropOutOfTurn  = "out_of_turn"
	dropIllegal    = "illegal"
	dropBusy       = "busy"
	dropOther      = "other"
)

// State is the payload of a state message: the room as seen by the recipient plus the hand history
type State struct {
	*holdem.View
	Log []*protocol.LogMessage `json:"log"`
}

func newStateResponse(view *holdem.View, log []*protocol.LogMessage) *protocol.Response {
	return &protocol.Response{
		Key: protocol.KeyState,
		Data: &State{
			View: view,
			Log:  log,
		},
	}
}

func dropReason(err error) string {
	switch err {
	case holdem.ErrNotYourTurn:
		return dropOutOfTurn
	case holdem.ErrIllegalAction, holdem.ErrBelowMinimum:
		return dropIllegal
	case holdem.ErrNotStarted, holdem.ErrCannotAct, holdem.ErrPlayerNotFound:
		return dropNotPlaying
	}

	return dropOther
}
