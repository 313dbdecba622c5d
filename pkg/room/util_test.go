package room

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"holdem-server/pkg/handeval"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/protocol"
)

type testObserver struct {
	lock     sync.Mutex
	counters map[string]int
}

func newTestObserver() *testObserver {
	return &testObserver{counters: make(map[string]int)}
}

func (o *testObserver) inc(key string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.counters[key]++
}

func (o *testObserver) count(key string) int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.counters[key]
}

func (o *testObserver) RoomOpened()                 { o.inc("roomOpened") }
func (o *testObserver) RoomClosed()                 { o.inc("roomClosed") }
func (o *testObserver) ClientConnected()            { o.inc("clientConnected") }
func (o *testObserver) ClientDisconnected()         { o.inc("clientDisconnected") }
func (o *testObserver) HandDealt()                  { o.inc("handDealt") }
func (o *testObserver) ActionApplied(action string) { o.inc("applied:" + action) }
func (o *testObserver) ActionDropped(reason string) { o.inc("dropped:" + reason) }

func newTestPitBoss(t *testing.T) (*PitBoss, *testObserver) {
	t.Helper()

	opts := holdem.DefaultOptions()
	opts.ShowdownDelay = 150 * time.Millisecond
	opts.FoldWinDelay = 100 * time.Millisecond

	observer := newTestObserver()
	p := NewPitBoss(logrus.StandardLogger(), opts, handeval.New(), observer)
	t.Cleanup(p.Close)

	return p, observer
}

func newTestClient(p *PitBoss) *Client {
	c := NewClient(nil, p)
	p.ClientConnected(c)
	return c
}

func send(c *Client, event string, msg protocol.PayloadIn) {
	msg.Event = event
	c.ReceivedMessage(&msg)
}

// flush waits until the room processed every queued request
func flush(t *testing.T, p *PitBoss, roomID string) {
	t.Helper()

	p.lock.Lock()
	d, ok := p.dealers[roomID]
	if !ok {
		p.lock.Unlock()
		return
	}

	done := make(chan bool)
	queued := p.dispatch(nil, "", d, func() { close(done) })
	p.lock.Unlock()
	require.True(t, queued)

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "timed out waiting on the run loop")
	}
}

// drain returns every message waiting for the client
func drain(c *Client) []*protocol.Response {
	responses := make([]*protocol.Response, 0)
	for {
		select {
		case msg := <-c.SendChan():
			responses = append(responses, msg.(*protocol.Response))
		default:
			return responses
		}
	}
}

func nextResponse(t *testing.T, c *Client) *protocol.Response {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		return msg.(*protocol.Response)
	case <-time.After(time.Second):
		require.FailNow(t, "timed out waiting for a message")
	}

	return nil
}

// lastState drains the client and returns the latest state it received, or nil
func lastState(c *Client) *State {
	var state *State
	for _, msg := range drain(c) {
		if msg.Key == protocol.KeyState {
			state = msg.Data.(*State)
		}
	}

	return state
}

func requireState(t *testing.T, c *Client) *State {
	t.Helper()
	state := lastState(c)
	require.NotNil(t, state, "no state received")
	return state
}

func dealerCount(p *PitBoss) int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.dealers)
}

func joinRoom(t *testing.T, p *PitBoss, c *Client, roomID, name string) {
	t.Helper()
	send(c, protocol.EventJoin, protocol.PayloadIn{RoomID: roomID, Name: name})
	flush(t, p, holdem.SanitizeRoomID(roomID))
}
