package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2♡", (&Card{Rank: 2, Suit: Hearts}).String())
	assert.Equal(t, "J♣", (&Card{Rank: 11, Suit: Clubs}).String())
	assert.Equal(t, "Q♢", (&Card{Rank: 12, Suit: Diamonds}).String())
	assert.Equal(t, "K♠", (&Card{Rank: 13, Suit: Spades}).String())
	assert.Equal(t, "A♠", (&Card{Rank: 14, Suit: Spades}).String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)
	a.Equal(&Card{Rank: 14, Suit: Spades}, CardFromString("14s"))
	a.Equal(&Card{Rank: 10, Suit: Hearts}, CardFromString("10H"))
	a.Equal(&Card{Rank: 2, Suit: Clubs}, CardFromString("2c"))
	a.Nil(CardFromString(""))

	a.Panics(func() { CardFromString("1s") })
	a.Panics(func() { CardFromString("15s") })
	a.Panics(func() { CardFromString("10x") })
}

func TestCardsToString(t *testing.T) {
	cards := CardsFromString("14s,10h,2d,13c")
	assert.Equal(t, 4, len(cards))
	assert.Equal(t, "14s,10h,2d,13c", CardsToString(cards))
	assert.Equal(t, "", CardToString(nil))
	assert.Equal(t, []*Card{}, CardsFromString(""))
}
