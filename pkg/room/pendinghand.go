package room

import (
	"time"
)

// timerRetryDelay is how long a fired timer waits before retrying a full run loop queue
const timerRetryDelay = time.Millisecond * 25

// pendingHand is the timer dealing the next hand once the cooldown after a showdown is over
type pendingHand struct {
	handID int
	start  time.Time
	timer  *time.Timer
}

// newPendingHand calls fn after delay, fn runs on the timer's goroutine
func newPendingHand(handID int, delay time.Duration, fn func()) *pendingHand {
	return &pendingHand{
		handID: handID,
		start:  time.Now().Add(delay),
		timer:  time.AfterFunc(delay, fn),
	}
}

func (p *pendingHand) cancel() {
	p.timer.Stop()
}
