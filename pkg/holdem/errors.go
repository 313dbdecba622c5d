package holdem

// UserError is an error that is safe to show to the player who caused it
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// validation errors
const (
	ErrRoomIDRequired   = UserError("a room id is required")
	ErrNameRequired     = UserError("a player name is required")
	ErrDuplicateName    = UserError("that name is already taken in this room, choose another")
	ErrAlreadySeated    = UserError("you are already seated in this room")
	ErrPlayerNotFound   = UserError("you are not seated in this room")
	ErrNotEnoughPlayers = UserError("at least two players with tokens are needed to start")
	ErrHandInProgress   = UserError("a hand is already in progress")
)

// capacity and authorization errors
const (
	ErrRoomFull = UserError("the room is full")
	ErrNotHost  = UserError("only the host can do that")
)

// betting errors, these are illegal but benign moves
const (
	ErrNotStarted    = UserError("no betting round is in progress")
	ErrNotYourTurn   = UserError("it is not your turn")
	ErrCannotAct     = UserError("you cannot act in this hand")
	ErrIllegalAction = UserError("that action is not allowed right now")
	ErrBelowMinimum  = UserError("the amount is below the minimum unit")
)
