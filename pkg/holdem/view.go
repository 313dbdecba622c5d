package holdem

import "holdem-server/pkg/deck"

// HiddenCard is shown in place of another player's hole card
const HiddenCard = "??"

// View is the room as seen by one player
type View struct {
	ID          string        `json:"id"`
	HostID      *string       `json:"hostId"`
	MaxPlayers  int           `json:"maxPlayers"`
	Started     bool          `json:"started"`
	Stage       Stage         `json:"stage"`
	HandID      int           `json:"handId"`
	Pot         int           `json:"pot"`
	Community   []string      `json:"community"`
	DealerSeat  int           `json:"dealerSeat"`
	CurrentSeat int           `json:"currentSeat"`
	HighestBet  int           `json:"highestBet"`
	Players     []*PlayerView `json:"players"`
	LastResult  *HandResult   `json:"lastResult,omitempty"`
}

// PlayerView is a player as seen by one viewer
type PlayerView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Seat         int      `json:"seat"`
	Tokens       int      `json:"tokens"`
	Folded       bool     `json:"folded"`
	AllIn        bool     `json:"allIn"`
	BetThisRound int      `json:"betThisRound"`
	Cards        []string `json:"cards"`
}

// View returns the public state of the room for viewerID
// Only the viewer's own hole cards are revealed
func (r *Room) View(viewerID string) *View {
	var hostID *string
	if r.hostID != "" {
		id := r.hostID
		hostID = &id
	}

	players := make([]*PlayerView, len(r.players))
	for i, p := range r.players {
		players[i] = p.view(viewerID)
	}

	return &View{
		ID:          r.id,
		HostID:      hostID,
		MaxPlayers:  r.maxPlayers,
		Started:     r.started,
		Stage:       r.stage,
		HandID:      r.handID,
		Pot:         r.pot,
		Community:   cardTokens(r.community),
		DealerSeat:  r.dealerSeat,
		CurrentSeat: r.currentSeat,
		HighestBet:  r.highestBet,
		Players:     players,
		LastResult:  r.lastResult,
	}
}

func (p *Player) view(viewerID string) *PlayerView {
	var cards []string
	switch {
	case p.ID == viewerID:
		cards = cardTokens(p.cards)
	case p.HasCards():
		cards = []string{HiddenCard, HiddenCard}
	default:
		cards = []string{}
	}

	return &PlayerView{
		ID:           p.ID,
		Name:         p.Name,
		Seat:         p.Seat,
		Tokens:       p.Tokens,
		Folded:       p.folded,
		AllIn:        p.allIn,
		BetThisRound: p.betThisRound,
		Cards:        cards,
	}
}

func cardTokens(cards deck.Hand) []string {
	tokens := make([]string, len(cards))
	for i, card := range cards {
		tokens[i] = deck.CardToString(card)
	}

	return tokens
}
