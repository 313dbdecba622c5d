package protocol

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage("", "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.PlayerIDs)
	assert.Len(t, lm.UUID, 36)
	assert.False(t, lm.Time.Before(before))
	assert.False(t, time.Now().Before(lm.Time))
}

func TestSimpleLogMessage_withPlayerID(t *testing.T) {
	lm := SimpleLogMessage("abc", "test %d", 4)
	assert.Equal(t, "test 4", lm.Message)
	assert.Equal(t, []string{"abc"}, lm.PlayerIDs)
}

func TestPayloadIn(t *testing.T) {
	a := assert.New(t)

	var msg PayloadIn
	a.NoError(json.Unmarshal([]byte(`{"event":"createRoom","roomId":"friday","maxPlayers":"6","context":"c1"}`), &msg))
	a.Equal(EventCreateRoom, msg.Event)
	a.Equal("friday", msg.RoomID)
	a.Equal(Int(6), msg.MaxPlayers)
	a.Equal("c1", msg.Context)

	msg = PayloadIn{}
	a.NoError(json.Unmarshal([]byte(`{"event":"action","action":"raise","amount":42.9}`), &msg))
	a.Equal("raise", msg.Action)
	a.Equal(Int(42), msg.Amount)

	msg = PayloadIn{}
	a.NoError(json.Unmarshal([]byte(`{"event":"action","action":"bet","amount":"lots"}`), &msg))
	a.Equal(Int(0), msg.Amount)

	msg = PayloadIn{}
	a.NoError(json.Unmarshal([]byte(`{"event":"action","action":"bet","amount":null}`), &msg))
	a.Equal(Int(0), msg.Amount)
}

func TestInt_Clamped(t *testing.T) {
	tests := []struct {
		in       string
		expected Int
	}{
		{`9223372036854774784`, MaxInt},
		{`1e300`, MaxInt},
		{`"Inf"`, MaxInt},
		{`"+Infinity"`, MaxInt},
		{`"-Inf"`, 0},
		{`"NaN"`, 0},
		{`-20`, 0},
		{`2147483647`, MaxInt},
		{`1100`, 1100},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			var i Int
			assert.NoError(t, json.Unmarshal([]byte(test.in), &i))
			assert.Equal(t, test.expected, i)
		})
	}
}

func TestResponses(t *testing.T) {
	a := assert.New(t)
	a.Equal(&Response{Key: "status", Value: "OK", Context: "ctx"}, OK("ctx"))
	a.Equal(&Response{Key: "status", Value: "OK"}, OK())
	a.Equal(&Response{Key: "errorMsg", Value: "room is full", Context: "ctx"}, ErrorResponse("ctx", errors.New("room is full")))
}
