package holdem

import (
	"errors"
	"time"
)

// MaxSeats is the most players a room can ever hold
const MaxSeats = 9

// MinSeats is the fewest seats a room can be configured with
const MinSeats = 2

// Options configures how a room plays
type Options struct {
	// MinUnit is the smallest denomination, every stake is a multiple of it
	MinUnit     int
	SmallBlind  int
	BigBlind    int
	StartTokens int
	MaxPlayers  int

	// ShowdownDelay is the pause between a showdown and the next hand
	ShowdownDelay time.Duration
	// FoldWinDelay is the pause after everyone but one player folded
	FoldWinDelay time.Duration
}

// DefaultOptions returns the default options for a room
func DefaultOptions() Options {
	return Options{
		MinUnit:       5,
		SmallBlind:    10,
		BigBlind:      20,
		StartTokens:   2000,
		MaxPlayers:    MaxSeats,
		ShowdownDelay: time.Second * 3,
		FoldWinDelay:  time.Second * 2,
	}
}

// Validate checks the options are internally consistent
func (o Options) Validate() error {
	if o.MinUnit <= 0 {
		return errors.New("minimum unit must be > 0")
	}

	if o.SmallBlind <= 0 || o.SmallBlind%o.MinUnit > 0 {
		return errors.New("small blind must be a positive multiple of the minimum unit")
	}

	if o.BigBlind < o.SmallBlind || o.BigBlind%o.MinUnit > 0 {
		return errors.New("big blind must be a multiple of the minimum unit and >= the small blind")
	}

	if o.StartTokens <= 0 || o.StartTokens%o.MinUnit > 0 {
		return errors.New("start tokens must be a positive multiple of the minimum unit")
	}

	if o.MaxPlayers < MinSeats || o.MaxPlayers > MaxSeats {
		return errors.New("max players must be between 2 and 9")
	}

	if o.ShowdownDelay < 0 || o.FoldWinDelay < 0 {
		return errors.New("delays cannot be negative")
	}

	return nil
}

// ClampMaxPlayers keeps a requested capacity within the allowed seat range
func ClampMaxPlayers(n int) int {
	if n < MinSeats {
		return MinSeats
	}

	if n > MaxSeats {
		return MaxSeats
	}

	return n
}
