package room

import (
	"sync"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/protocol"
)

// Dealer runs a single room
// Every change to the room happens in the dealer's run loop, one request at a time
type Dealer struct {
	id      string
	pitBoss *PitBoss
	room    *holdem.Room
	logger  logrus.FieldLogger

	// the fields below are only touched from the run loop
	clients     map[string]*Client
	logMessages []*protocol.LogMessage
	pending     *pendingHand
	handsDealt  int
	dirty       bool

	lock    sync.RWMutex
	summary holdem.Summary
	listed  bool

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, room *holdem.Room) *Dealer {
	return &Dealer{
		id:            room.ID(),
		pitBoss:       pitBoss,
		room:          room,
		logger:        pitBoss.logger.WithField("room", room.ID()),
		clients:       make(map[string]*Client),
		summary:       room.Summary(),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// Summary returns the room's entry in the room list, and whether it should be listed at all
func (d *Dealer) Summary() (holdem.Summary, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.summary, d.listed
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	defer d.cancelPending()

	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
			if !d.afterExec() {
				d.logger.Debug("terminating dealer run loop, the room is empty")
				return
			}
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// changed marks the room as modified, clients get the new state once the current request is done
// NOTE: must only be called from the run loop
func (d *Dealer) changed() {
	d.dirty = true
}

// afterExec publishes the changes of a request
// Returns false once the dealer has been retired
func (d *Dealer) afterExec() bool {
	if d.dirty {
		d.dirty = false
		d.collectLogMessages()
		d.countHands()
		d.schedulePending()
		d.sendState()
	}

	summary := d.room.Summary()
	listed := !d.room.IsEmpty()
	d.lock.Lock()
	d.summary = summary
	d.listed = listed
	d.lock.Unlock()

	if listed {
		return true
	}

	return !d.pitBoss.retire(d)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendState() {
	for id, client := range d.clients {
		if !client.Send(newStateResponse(d.room.View(id), d.logMessages)) {
			d.logger.WithField("client", client.String()).Warn("client is not keeping up, state dropped")
		}
	}
}

func (d *Dealer) countHands() {
	for d.handsDealt < d.room.HandID() {
		d.handsDealt++
		d.pitBoss.observer.HandDealt()
	}
}

// schedulePending arms the timer for the room's next hand
// NOTE: must only be called from the run loop
func (d *Dealer) schedulePending() {
	handID, delay, ok := d.room.Pending()
	if !ok {
		d.cancelPending()
		return
	}

	if d.pending != nil && d.pending.handID == handID {
		return
	}

	d.cancelPending()
	d.pending = newPendingHand(handID, delay, func() {
		d.pitBoss.dispatchTimer(d, func() { d.runPending(handID) })
	})

	d.logger.WithFields(logrus.Fields{
		"hand": handID,
		"at":   d.pending.start,
	}).Debug("next hand scheduled")
}

// NOTE: must only be called from the run loop
func (d *Dealer) runPending(handID int) {
	if d.pending == nil || d.pending.handID != handID {
		return
	}

	d.pending = nil
	ran, err := d.room.RunPending(handID)
	if err != nil {
		d.logger.WithError(err).WithField("hand", handID).Error("could not start the next hand")
	}

	if ran {
		d.changed()
	}
}

func (d *Dealer) cancelPending() {
	if d.pending != nil {
		d.pending.cancel()
		d.pending = nil
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) join(c *Client, name, ctx string) {
	p, err := d.room.Join(c.ID, name)
	if err != nil {
		if _, seated := d.room.Player(c.ID); !seated {
			d.pitBoss.endSession(c.ID, d.id)
		}

		c.Send(protocol.ErrorResponse(ctx, err))
		return
	}

	d.clients[c.ID] = c
	d.addLogMessages(protocol.SimpleLogMessage(c.ID, "sat down at seat %d", p.Seat))
	d.changed()
}

// NOTE: must only be called from the run loop
func (d *Dealer) remove(clientID string) {
	delete(d.clients, clientID)

	p, seated := d.room.Player(clientID)
	if !seated {
		return
	}

	name := p.Name
	d.room.Remove(clientID)
	d.addLogMessages(protocol.SimpleLogMessage("", "%s left the table", name))
	d.changed()
}

// NOTE: must only be called from the run loop
func (d *Dealer) start(c *Client, ctx string) {
	if err := d.room.Start(c.ID); err != nil {
		if err == holdem.ErrPlayerNotFound {
			return
		}

		c.Send(protocol.ErrorResponse(ctx, err))
		return
	}

	d.changed()
}

// act applies a betting decision, illegal moves are dropped without telling anyone
// NOTE: must only be called from the run loop
func (d *Dealer) act(c *Client, move holdem.Move) {
	if err := d.room.Act(c.ID, move); err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"client": c.String(),
			"action": move.Action.String(),
			"amount": move.Amount,
		}).Debug("dropped action")
		d.pitBoss.observer.ActionDropped(dropReason(err))
		return
	}

	d.pitBoss.observer.ActionApplied(move.Action.String())
	d.changed()
}
