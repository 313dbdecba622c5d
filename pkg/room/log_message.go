package room

import (
	"holdem-server/pkg/protocol"
)

const logMessageLimit = 25

// addLogMessages adds to the hand history, only the latest messages are kept
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages ...*protocol.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// collectLogMessages moves the room's events into the hand history
// Note: this must only be called from within the run loop
func (d *Dealer) collectLogMessages() {
	events := d.room.DrainEvents()
	if len(events) == 0 {
		return
	}

	messages := make([]*protocol.LogMessage, len(events))
	for i, event := range events {
		messages[i] = protocol.SimpleLogMessage(event.PlayerID, "%s", event.Message)
	}

	d.addLogMessages(messages...)
}
