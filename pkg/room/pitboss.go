package room

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/handeval"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/protocol"
)

// PitBoss is responsible for dispatching clients to rooms
// It owns every Dealer and knows which room each client is seated in
type PitBoss struct {
	logger    logrus.FieldLogger
	options   holdem.Options
	evaluator handeval.Evaluator
	observer  Observer

	lock    sync.Mutex
	dealers map[string]*Dealer
	// sessions maps a client to the room they joined, a client sits in one room at a time
	sessions map[string]string
	// claims maps a client to the rooms they created
	claims map[string]map[string]bool
}

// NewPitBoss returns a new dispatch object
// observer can be nil
func NewPitBoss(logger logrus.FieldLogger, opts holdem.Options, evaluator handeval.Evaluator, observer Observer) *PitBoss {
	if observer == nil {
		observer = nopObserver{}
	}

	return &PitBoss{
		logger:    logger,
		options:   opts,
		evaluator: evaluator,
		observer:  observer,
		dealers:   make(map[string]*Dealer),
		sessions:  make(map[string]string),
		claims:    make(map[string]map[string]bool),
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(c *Client) {
	p.logger.WithField("client", c.String()).Debug("client connected")
	p.observer.ClientConnected()
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(c *Client) {
	p.logger.WithField("client", c.String()).Debug("client disconnected")
	p.disconnect(c)
	p.observer.ClientDisconnected()
}

// ReceivedMessage is called when a client sends a message to the server
func (p *PitBoss) ReceivedMessage(c *Client, msg *protocol.PayloadIn) {
	switch msg.Event {
	case protocol.EventCreateRoom:
		p.createRoom(c, msg)
	case protocol.EventListRooms:
		c.Send(&protocol.Response{
			Key:     protocol.KeyRoomsList,
			Data:    p.Rooms(),
			Context: msg.Context,
		})
	case protocol.EventJoin:
		p.join(c, msg)
	case protocol.EventLeaveRoom:
		p.leaveRoom(c)
	case protocol.EventStart:
		p.start(c, msg)
	case protocol.EventAction:
		p.action(c, msg)
	case protocol.EventDisconnect:
		p.disconnect(c)
	default:
		p.logger.WithFields(logrus.Fields{
			"client": c.String(),
			"event":  msg.Event,
		}).Warn("unknown message")
	}
}

// Rooms returns the room list: rooms nobody sits in or hosts are left out, rooms waiting to start come first,
// then the fullest rooms
func (p *PitBoss) Rooms() []holdem.Summary {
	p.lock.Lock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, d := range p.dealers {
		dealers = append(dealers, d)
	}
	p.lock.Unlock()

	rooms := make([]holdem.Summary, 0, len(dealers))
	for _, d := range dealers {
		if summary, listed := d.Summary(); listed {
			rooms = append(rooms, summary)
		}
	}

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Started != rooms[j].Started {
			return !rooms[i].Started
		}

		if rooms[i].Players != rooms[j].Players {
			return rooms[i].Players > rooms[j].Players
		}

		return rooms[i].ID < rooms[j].ID
	})

	return rooms
}

// Close ends the shift of every dealer
func (p *PitBoss) Close() {
	p.lock.Lock()
	defer p.lock.Unlock()

	for id, d := range p.dealers {
		d.EndShift()
		delete(p.dealers, id)
		p.observer.RoomClosed()
	}
}

func (p *PitBoss) createRoom(c *Client, msg *protocol.PayloadIn) {
	roomID, name, err := sanitizeRoomAndName(msg)
	if err != nil {
		c.Send(protocol.ErrorResponse(msg.Context, err))
		return
	}

	maxPlayers := parseMaxPlayers(msg.MaxPlayers)

	p.lock.Lock()
	defer p.lock.Unlock()

	d, err := p.dealerFor(roomID)
	if err != nil {
		c.Send(protocol.ErrorResponse(msg.Context, err))
		return
	}

	if p.claims[c.ID] == nil {
		p.claims[c.ID] = make(map[string]bool)
	}
	p.claims[c.ID][roomID] = true

	p.dispatch(c, msg.Context, d, func() {
		if d.room.ClaimHost(c.ID) {
			// the capacity is fixed once the room started
			if err := d.room.SetMaxPlayers(c.ID, maxPlayers); err == nil {
				d.changed()
			}
		}

		d.logger.WithFields(logrus.Fields{
			"client": c.String(),
			"name":   name,
			"host":   d.room.HostID(),
		}).Info("room created")
		c.Send(protocol.OK(msg.Context))
	})
}

func (p *PitBoss) join(c *Client, msg *protocol.PayloadIn) {
	roomID, name, err := sanitizeRoomAndName(msg)
	if err != nil {
		c.Send(protocol.ErrorResponse(msg.Context, err))
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	if current, ok := p.sessions[c.ID]; ok && current != roomID {
		p.leave(c, current)
	}

	d, err := p.dealerFor(roomID)
	if err != nil {
		c.Send(protocol.ErrorResponse(msg.Context, err))
		return
	}

	if p.dispatch(c, msg.Context, d, func() { d.join(c, name, msg.Context) }) {
		p.sessions[c.ID] = roomID
	}
}

func (p *PitBoss) leaveRoom(c *Client) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if roomID, ok := p.sessions[c.ID]; ok {
		p.leave(c, roomID)
	}
}

func (p *PitBoss) start(c *Client, msg *protocol.PayloadIn) {
	p.lock.Lock()
	defer p.lock.Unlock()

	d := p.sessionDealer(c)
	if d == nil {
		return
	}

	p.dispatch(c, msg.Context, d, func() { d.start(c, msg.Context) })
}

func (p *PitBoss) action(c *Client, msg *protocol.PayloadIn) {
	action, err := holdem.ActionFromString(msg.Action)
	if err != nil {
		p.logger.WithError(err).WithField("client", c.String()).Debug("dropped action")
		p.observer.ActionDropped(dropUnknown)
		return
	}

	move := holdem.Move{
		Action: action,
		Amount: int(msg.Amount),
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	d := p.sessionDealer(c)
	if d == nil {
		p.observer.ActionDropped(dropNotPlaying)
		return
	}

	p.dispatch(c, msg.Context, d, func() { d.act(c, move) })
}

func (p *PitBoss) disconnect(c *Client) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if roomID, ok := p.sessions[c.ID]; ok {
		p.leave(c, roomID)
	}

	for roomID := range p.claims[c.ID] {
		d, ok := p.dealers[roomID]
		if !ok {
			continue
		}

		p.dispatch(nil, "", d, func() {
			if d.room.ReleaseHost(c.ID) {
				d.changed()
			}
		})
	}

	delete(p.claims, c.ID)
}

// leave must be called with the lock held
func (p *PitBoss) leave(c *Client, roomID string) {
	delete(p.sessions, c.ID)
	if d, ok := p.dealers[roomID]; ok {
		p.dispatch(nil, "", d, func() { d.remove(c.ID) })
	}
}

// sessionDealer returns the dealer of the client's room, must be called with the lock held
func (p *PitBoss) sessionDealer(c *Client) *Dealer {
	roomID, ok := p.sessions[c.ID]
	if !ok {
		return nil
	}

	return p.dealers[roomID]
}

// dealerFor returns the room's dealer, the room is created if it does not exist
// Must be called with the lock held
func (p *PitBoss) dealerFor(roomID string) (*Dealer, error) {
	if d, ok := p.dealers[roomID]; ok {
		return d, nil
	}

	r, err := holdem.NewRoom(p.logger, roomID, p.options, p.evaluator)
	if err != nil {
		return nil, err
	}

	d := NewDealer(p, r)
	d.StartShift()
	p.dealers[roomID] = d
	p.observer.RoomOpened()

	return d, nil
}

// dispatch queues fn in the dealer's run loop, must be called with the lock held
// The lock is never held while blocking: if the queue is full the request is rejected and
// the client, if any, is told so
func (p *PitBoss) dispatch(c *Client, ctx string, d *Dealer, fn func()) bool {
	select {
	case d.execInRunLoop <- fn:
		return true
	default:
		d.logger.Warn("run loop queue is full, request dropped")
		p.observer.ActionDropped(dropBusy)
		if c != nil {
			c.Send(protocol.ErrorResponse(ctx, ErrRoomBusy))
		}

		return false
	}
}

// dispatchTimer queues fn for a timer that fired, it is a no-op if the dealer has been retired
// A timer task is never dropped: while the queue is full it retries, without holding the lock
func (p *PitBoss) dispatchTimer(d *Dealer, fn func()) {
	for attempt := 0; ; attempt++ {
		if p.tryDispatchTimer(d, fn) {
			return
		}

		if attempt == 0 {
			d.logger.Warn("run loop queue is full, timer task delayed")
		}

		select {
		case <-d.close:
			return
		case <-time.After(timerRetryDelay):
		}
	}
}

// tryDispatchTimer returns true once fn is queued, or if the dealer is gone
func (p *PitBoss) tryDispatchTimer(d *Dealer, fn func()) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.dealers[d.id] != d {
		return true
	}

	select {
	case d.execInRunLoop <- fn:
		return true
	default:
		return false
	}
}

// endSession forgets the client's session, unless they moved to another room since
func (p *PitBoss) endSession(clientID, roomID string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.sessions[clientID] == roomID {
		delete(p.sessions, clientID)
	}
}

// retire removes an empty dealer from the registry
// A dealer with queued work is kept, a request that raced in may still seat someone
func (p *PitBoss) retire(d *Dealer) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(d.execInRunLoop) > 0 || p.dealers[d.id] != d {
		return false
	}

	delete(p.dealers, d.id)
	p.observer.RoomClosed()
	d.logger.Debug("room retired")
	return true
}

func sanitizeRoomAndName(msg *protocol.PayloadIn) (roomID, name string, err error) {
	roomID = holdem.SanitizeRoomID(msg.RoomID)
	if roomID == "" {
		return "", "", holdem.ErrRoomIDRequired
	}

	name = holdem.SanitizeName(msg.Name)
	if name == "" {
		return "", "", holdem.ErrNameRequired
	}

	return roomID, name, nil
}

// parseMaxPlayers falls back to a full table when the client sent nothing usable
func parseMaxPlayers(n protocol.Int) int {
	if n <= 0 {
		return holdem.MaxSeats
	}

	return holdem.ClampMaxPlayers(int(n))
}
