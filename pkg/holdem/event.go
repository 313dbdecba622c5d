package holdem

import "fmt"

// Event is an entry in the hand history
// PlayerID is empty for table-wide events, otherwise the message reads as "{player} {message}"
type Event struct {
	PlayerID string
	Message  string
}

func (r *Room) record(playerID, format string, a ...interface{}) {
	r.events = append(r.events, &Event{
		PlayerID: playerID,
		Message:  fmt.Sprintf(format, a...),
	})
}

// DrainEvents returns the events recorded since the previous call
func (r *Room) DrainEvents() []*Event {
	events := r.events
	r.events = nil
	return events
}
