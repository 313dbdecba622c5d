package room

// Observer is told about activity in the rooms
// internal/metrics implements it with prometheus collectors
type Observer interface {
	RoomOpened()
	RoomClosed()
	ClientConnected()
	ClientDisconnected()
	HandDealt()
	ActionApplied(action string)
	ActionDropped(reason string)
}

type nopObserver struct{}

func (nopObserver) RoomOpened()          {}
func (nopObserver) RoomClosed()          {}
func (nopObserver) ClientConnected()     {}
func (nopObserver) ClientDisconnected()  {}
func (nopObserver) HandDealt()           {}
func (nopObserver) ActionApplied(string) {}
func (nopObserver) ActionDropped(string) {}
