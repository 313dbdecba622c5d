package holdem

import (
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/handeval"
)

// Room is a single Texas Hold'em table
// A Room is not safe for concurrent use, the caller must serialize every call
type Room struct {
	id         string
	hostID     string
	maxPlayers int

	// players are always sorted by seat
	players []*Player

	stage      Stage
	started    bool
	handID     int
	dealerSeat int
	community  deck.Hand
	pot        int
	highestBet int

	// lastAggressorSeat is nil when nobody bet or raised in the current round
	lastAggressorSeat *int
	currentSeat       int

	deck      *deck.Deck
	newDeck   func() *deck.Deck
	options   Options
	evaluator handeval.Evaluator
	logger    logrus.FieldLogger

	pending    *pendingHand
	lastResult *HandResult
	events     []*Event
}

// pendingHand is the next hand waiting on a cooldown
type pendingHand struct {
	HandID int
	Delay  time.Duration
}

// NewRoom returns an empty room in the lobby
func NewRoom(logger logrus.FieldLogger, id string, opts Options, evaluator handeval.Evaluator) (*Room, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, ErrRoomIDRequired
	}

	return &Room{
		id:         id,
		maxPlayers: opts.MaxPlayers,
		players:    make([]*Player, 0, MaxSeats),
		stage:      StageLobby,
		community:  make(deck.Hand, 0, 5),
		newDeck:    shuffledDeck,
		options:    opts,
		evaluator:  evaluator,
		logger:     logger.WithField("room", id),
	}, nil
}

func shuffledDeck() *deck.Deck {
	d := deck.New()
	d.Shuffle()
	return d
}

// ID returns the room identifier
func (r *Room) ID() string {
	return r.id
}

// HostID returns the host's player id, or an empty string if there is no host
func (r *Room) HostID() string {
	return r.hostID
}

// MaxPlayers returns the seat capacity
func (r *Room) MaxPlayers() int {
	return r.maxPlayers
}

// Stage returns the current stage
func (r *Room) Stage() Stage {
	return r.stage
}

// Started returns true once a hand has been dealt and the room has not returned to the lobby
func (r *Room) Started() bool {
	return r.started
}

// HandID returns the number of hands dealt in this room
func (r *Room) HandID() int {
	return r.handID
}

// Pot returns the chips in the middle
func (r *Room) Pot() int {
	return r.pot
}

// HighestBet returns the highest bet of the current betting round
func (r *Room) HighestBet() int {
	return r.highestBet
}

// CurrentSeat returns the seat of the player to act
func (r *Room) CurrentSeat() int {
	return r.currentSeat
}

// DealerSeat returns the seat of the dealer button
func (r *Room) DealerSeat() int {
	return r.dealerSeat
}

// LastAggressorSeat returns the seat of the last player to bet or raise in the round
func (r *Room) LastAggressorSeat() (int, bool) {
	if r.lastAggressorSeat == nil {
		return 0, false
	}

	return *r.lastAggressorSeat, true
}

// Community returns the board cards
func (r *Room) Community() deck.Hand {
	return r.community.Clone()
}

// LastResult returns how the previous hand was settled, or nil
func (r *Room) LastResult() *HandResult {
	return r.lastResult
}

// Players returns the seated players ordered by seat
func (r *Room) Players() []*Player {
	players := make([]*Player, len(r.players))
	copy(players, r.players)
	return players
}

// PlayerCount returns how many players are seated
func (r *Room) PlayerCount() int {
	return len(r.players)
}

// IsEmpty returns true if nobody is seated and nobody holds the host claim
func (r *Room) IsEmpty() bool {
	return len(r.players) == 0 && r.hostID == ""
}

// Player returns the player with the given id
func (r *Room) Player(id string) (*Player, bool) {
	p := r.playerByID(id)
	return p, p != nil
}

func (r *Room) playerByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

func (r *Room) playerAtSeat(seat int) *Player {
	for _, p := range r.players {
		if p.Seat == seat {
			return p
		}
	}

	return nil
}

// handRunning is true from the deal until the room returns to the lobby, showdown included
func (r *Room) handRunning() bool {
	return r.started && r.stage != StageLobby
}

// ClaimHost makes id the host if the room does not have one
// Returns true if id is the host afterwards
func (r *Room) ClaimHost(id string) bool {
	if r.hostID == "" {
		r.hostID = id
	}

	return r.hostID == id
}

// ReleaseHost drops the host claim of id, the lowest seated player becomes host
// Returns true if id was the host
func (r *Room) ReleaseHost(id string) bool {
	if id == "" || r.hostID != id {
		return false
	}

	r.hostID = ""
	if len(r.players) > 0 {
		r.hostID = r.players[0].ID
	}

	return true
}

// SetMaxPlayers changes the seat capacity
// Only the host can change it, and only while the room is not started
func (r *Room) SetMaxPlayers(by string, n int) error {
	if r.hostID != by {
		return ErrNotHost
	}

	if r.started {
		return ErrHandInProgress
	}

	n = ClampMaxPlayers(n)
	if n < len(r.players) {
		n = len(r.players)
	}

	r.maxPlayers = n
	return nil
}

// Join seats a new player
// A player joining while a hand is running sits out until the next deal
func (r *Room) Join(id, name string) (*Player, error) {
	name = SanitizeName(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if r.playerByID(id) != nil {
		return nil, ErrAlreadySeated
	}

	if len(r.players) >= r.maxPlayers {
		return nil, ErrRoomFull
	}

	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return nil, ErrDuplicateName
		}
	}

	p := newPlayer(id, name, r.lowestFreeSeat(), r.options.StartTokens)
	if r.handRunning() {
		p.folded = true
	}

	r.players = append(r.players, p)
	sort.Slice(r.players, func(i, j int) bool {
		return r.players[i].Seat < r.players[j].Seat
	})

	r.ClaimHost(id)
	r.logger.WithFields(logrus.Fields{
		"player": id,
		"seat":   p.Seat,
	}).Debug("player joined")

	return p, nil
}

func (r *Room) lowestFreeSeat() int {
	used := make(map[int]bool, len(r.players))
	for _, p := range r.players {
		used[p.Seat] = true
	}

	seat := 0
	for used[seat] {
		seat++
	}

	return seat
}

// Remove unseats a player because they left or disconnected
// Returns false if the player was not seated
func (r *Room) Remove(id string) bool {
	idx := -1
	for i, p := range r.players {
		if p.ID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		return false
	}

	p := r.players[idx]
	wasActing := r.stage.IsBettingRound() && p.Seat == r.currentSeat && p.CanAct()
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	r.ReleaseHost(id)

	r.logger.WithFields(logrus.Fields{
		"player": id,
		"seat":   p.Seat,
	}).Debug("player left")

	if len(r.players) < 2 {
		r.backToLobby()
		return true
	}

	if !r.stage.IsBettingRound() {
		return true
	}

	// the chips they already put in stay in the pot
	r.recalculateHighestBet()
	if sole := r.soleContender(); sole != nil {
		r.awardSoleContender(sole)
		return true
	}

	if r.roundOver() {
		r.advanceStage()
		return true
	}

	if wasActing {
		r.currentSeat = r.nextEligibleSeat(p.Seat)
	}

	return true
}

func (r *Room) recalculateHighestBet() {
	highest := 0
	for _, p := range r.players {
		if p.HasCards() && p.betThisRound > highest {
			highest = p.betThisRound
		}
	}

	r.highestBet = highest
}

// backToLobby stops play and clears every hand
func (r *Room) backToLobby() {
	r.started = false
	r.stage = StageLobby
	r.pot = 0
	r.highestBet = 0
	r.lastAggressorSeat = nil
	r.community = make(deck.Hand, 0, 5)
	r.pending = nil
	for _, p := range r.players {
		p.resetHand()
	}
}

// Start deals the first hand on behalf of the host
func (r *Room) Start(by string) error {
	if r.playerByID(by) == nil {
		return ErrPlayerNotFound
	}

	if r.hostID != "" && r.hostID != by {
		return ErrNotHost
	}

	if r.handRunning() {
		return ErrHandInProgress
	}

	if r.fundedPlayerCount() < 2 {
		return ErrNotEnoughPlayers
	}

	return r.StartHand()
}

func (r *Room) fundedPlayerCount() int {
	n := 0
	for _, p := range r.players {
		if p.Tokens > 0 {
			n++
		}
	}

	return n
}

// Summary is a room's entry in the room list
type Summary struct {
	ID         string `json:"id"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Started    bool   `json:"started"`
}

// Summary returns the room list entry for the room
func (r *Room) Summary() Summary {
	return Summary{
		ID:         r.id,
		Players:    len(r.players),
		MaxPlayers: r.maxPlayers,
		Started:    r.handRunning(),
	}
}
