package holdem

import (
	"strings"

	"holdem-server/pkg/deck"
)

// MaxNameLength is the longest display name a player can have
const MaxNameLength = 18

// MaxRoomIDLength is the longest room identifier
const MaxRoomIDLength = 24

// Player is a seated player in a room
type Player struct {
	ID     string
	Name   string
	Seat   int
	Tokens int

	cards        deck.Hand
	folded       bool
	allIn        bool
	betThisRound int

	// acted is true once the player made a voluntary decision in the current betting round
	acted bool
	// contributed is what the player paid into the pot this hand
	contributed int
}

func newPlayer(id, name string, seat, tokens int) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Seat:   seat,
		Tokens: tokens,
		cards:  make(deck.Hand, 0, 2),
	}
}

// HasCards returns true if the player was dealt into the current hand
func (p *Player) HasCards() bool {
	return len(p.cards) > 0
}

// IsContender returns true if the player can still win the pot
func (p *Player) IsContender() bool {
	return p.HasCards() && !p.folded
}

// CanAct returns true if the player can still make betting decisions
func (p *Player) CanAct() bool {
	return p.IsContender() && !p.allIn
}

// Folded returns true if the player folded, or is sitting out the hand
func (p *Player) Folded() bool {
	return p.folded
}

// AllIn returns true if the player has committed their entire stack
func (p *Player) AllIn() bool {
	return p.allIn
}

// BetThisRound is what the player put in during the current betting round
func (p *Player) BetThisRound() int {
	return p.betThisRound
}

// Cards returns the player's hole cards
func (p *Player) Cards() deck.Hand {
	return p.cards.Clone()
}

func (p *Player) resetHand() {
	p.cards = make(deck.Hand, 0, 2)
	p.folded = false
	p.allIn = false
	p.betThisRound = 0
	p.acted = false
	p.contributed = 0
}

// newRound resets the player for the next street
func (p *Player) newRound() {
	p.betThisRound = 0
	p.acted = false
}

// SanitizeName trims a display name and caps its length
func SanitizeName(name string) string {
	return truncate(strings.TrimSpace(name), MaxNameLength)
}

// SanitizeRoomID trims a room identifier and caps its length
func SanitizeRoomID(id string) string {
	return truncate(strings.TrimSpace(id), MaxRoomIDLength)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return strings.TrimSpace(string(runes[:n]))
}
