package holdem

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"holdem-server/pkg/handeval"
)

func TestNewRoom(t *testing.T) {
	a := assert.New(t)

	r, err := NewRoom(logrus.StandardLogger(), "table", DefaultOptions(), handeval.New())
	a.NoError(err)
	a.Equal("table", r.ID())
	a.Equal(StageLobby, r.Stage())
	a.Equal(9, r.MaxPlayers())
	a.False(r.Started())
	a.True(r.IsEmpty())

	_, err = NewRoom(logrus.StandardLogger(), "", DefaultOptions(), handeval.New())
	a.Equal(ErrRoomIDRequired, err)

	opts := DefaultOptions()
	opts.SmallBlind = 12
	_, err = NewRoom(logrus.StandardLogger(), "table", opts, handeval.New())
	a.EqualError(err, "small blind must be a positive multiple of the minimum unit")
}

func TestRoom_JoinAssignsLowestFreeSeat(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "a", "b", "c", "d")

	for i := 0; i < 4; i++ {
		a.Equal(i, mustPlayer(t, r, playerID(i)).Seat)
	}

	a.True(r.Remove(playerID(1)))
	p, err := r.Join("e", "e")
	a.NoError(err)
	a.Equal(1, p.Seat)

	a.True(r.Remove(playerID(0)))
	a.True(r.Remove(playerID(2)))
	p, _ = r.Join("f", "f")
	a.Equal(0, p.Seat)
	p, _ = r.Join("g", "g")
	a.Equal(2, p.Seat)
	p, _ = r.Join("h", "h")
	a.Equal(4, p.Seat)

	seats := make([]int, 0)
	for _, p := range r.Players() {
		seats = append(seats, p.Seat)
	}
	a.Equal([]int{0, 1, 2, 3, 4}, seats, "players are ordered by seat")
}

func TestRoom_JoinErrors(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "Alice")

	_, err := r.Join("x", "   ")
	a.Equal(ErrNameRequired, err)

	_, err = r.Join("x", "ALICE")
	a.Equal(ErrDuplicateName, err)

	_, err = r.Join(playerID(0), "Someone")
	a.Equal(ErrAlreadySeated, err)

	p, err := r.Join("long", strings.Repeat("n", 30))
	a.NoError(err)
	a.Equal(strings.Repeat("n", 18), p.Name)

	a.NoError(r.SetMaxPlayers(playerID(0), 2))
	_, err = r.Join("y", "Bob")
	a.Equal(ErrRoomFull, err)
	a.Equal(2, r.PlayerCount())
}

func TestRoom_Host(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "a", "b", "c")
	a.Equal(playerID(0), r.HostID(), "first player becomes host")

	a.Equal(ErrNotHost, r.Start(playerID(1)))
	a.Equal(ErrNotHost, r.SetMaxPlayers(playerID(1), 4))

	a.NoError(r.SetMaxPlayers(playerID(0), 1))
	a.Equal(3, r.MaxPlayers(), "capacity never drops below the seated players")
	a.NoError(r.SetMaxPlayers(playerID(0), 20))
	a.Equal(9, r.MaxPlayers())

	r.Remove(playerID(0))
	a.Equal(playerID(1), r.HostID(), "host passes to the lowest seat")

	a.NoError(r.Start(playerID(1)))
	a.Equal(ErrHandInProgress, r.SetMaxPlayers(playerID(1), 5))
	a.Equal(ErrHandInProgress, r.Start(playerID(1)))
}

func TestRoom_ClaimHostBeforeJoining(t *testing.T) {
	a := assert.New(t)
	r, err := NewRoom(logrus.StandardLogger(), "table", DefaultOptions(), handeval.New())
	require.NoError(t, err)

	a.True(r.ClaimHost("creator"))
	a.False(r.ClaimHost("other"))
	a.False(r.IsEmpty(), "a hosted room is kept alive")

	_, _ = r.Join("other", "other")
	a.Equal("creator", r.HostID())

	a.False(r.ReleaseHost("other"))
	a.True(r.ReleaseHost("creator"))
	a.Equal("other", r.HostID())
}

func TestRoom_StartRequiresFundedPlayers(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "a")
	a.Equal(ErrNotEnoughPlayers, r.Start(playerID(0)))
	a.Equal(ErrPlayerNotFound, r.Start("nobody"))

	_, _ = r.Join(playerID(1), "b")
	mustPlayer(t, r, playerID(1)).Tokens = 0
	a.Equal(ErrNotEnoughPlayers, r.Start(playerID(0)))
	a.False(r.Started())

	mustPlayer(t, r, playerID(1)).Tokens = 100
	a.NoError(r.Start(playerID(0)))
	a.True(r.Started())
	a.Equal(StagePreFlop, r.Stage())
}

func TestRoom_JoinDuringHand(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "a", "b")
	require.NoError(t, r.Start(playerID(0)))

	p, err := r.Join("late", "late")
	a.NoError(err)
	a.False(p.HasCards())
	a.True(p.Folded())
	a.Equal([]string{}, r.View(playerID(0)).Players[2].Cards)

	// the late player is dealt in on the next hand
	assertAct(t, r, playerID(1), Fold, 0)
	ok, err := r.RunPending(1)
	a.True(ok)
	a.NoError(err)
	a.True(p.HasCards())
	a.False(p.Folded())
}

func TestRoom_RemoveLeavesOnePlayer(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "a", "b")
	require.NoError(t, r.Start(playerID(0)))
	assertAct(t, r, playerID(1), Call, 0)
	assertAct(t, r, playerID(0), Check, 0)
	a.Equal(StageFlop, r.Stage())

	a.True(r.Remove(playerID(0)))
	a.False(r.Remove(playerID(0)))

	a.Equal(StageLobby, r.Stage())
	a.False(r.Started())
	a.Equal(0, r.Pot())
	a.Empty(r.Community())
	remaining := mustPlayer(t, r, playerID(1))
	a.False(remaining.HasCards())
	a.False(remaining.Folded())
	a.Equal(0, remaining.BetThisRound())
	_, _, pending := r.Pending()
	a.False(pending)
}

func TestRoom_RemoveCurrentActorMidHand(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "a", "b", "c")
	require.NoError(t, r.Start(playerID(0)))

	// dealer 0, small blind 1, big blind 2, seat 0 acts first
	a.Equal(0, r.CurrentSeat())
	a.True(r.Remove(playerID(0)))
	a.Equal(1, r.CurrentSeat(), "the turn moves on")
	assertInvariants(t, r)

	assertAct(t, r, playerID(1), Call, 0)
	assertAct(t, r, playerID(2), Check, 0)
	a.Equal(StageFlop, r.Stage())
}

func TestRoom_RemoveLastOpponent(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "a", "b", "c")
	require.NoError(t, r.Start(playerID(0)))
	assertAct(t, r, playerID(0), Fold, 0)

	a.True(r.Remove(playerID(2)))
	a.Equal(StageShowdown, r.Stage())
	a.Equal(0, r.Pot())
	a.Equal(2000+20, mustPlayer(t, r, playerID(1)).Tokens, "the blinds go to the last player holding cards")
}

func TestRoom_Summary(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t, "a", "b")
	a.Equal(Summary{ID: "test", Players: 2, MaxPlayers: 9, Started: false}, r.Summary())

	require.NoError(t, r.Start(playerID(0)))
	a.True(r.Summary().Started)
}

func TestSanitize(t *testing.T) {
	a := assert.New(t)
	a.Equal("abc", SanitizeName("  abc  "))
	a.Equal(strings.Repeat("\u00e9", 18), SanitizeName(strings.Repeat("\u00e9", 20)), "truncated by rune")
	a.Equal(strings.Repeat("r", 24), SanitizeRoomID(strings.Repeat("r", 30)))
	a.Equal("", SanitizeRoomID("   "))
}
