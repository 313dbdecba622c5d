package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// events a client can send
const (
	EventCreateRoom = "createRoom"
	EventListRooms  = "listRooms"
	EventJoin       = "join"
	EventLeaveRoom  = "leaveRoom"
	EventStart      = "start"
	EventAction     = "action"

	// EventDisconnect is raised by the transport, never by a client
	EventDisconnect = "disconnect"
)

// keys of the messages sent to clients
const (
	KeyState     = "state"
	KeyRoomsList = "roomsList"
	KeyError     = "errorMsg"
	KeyStatus    = "status"
)

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Event      string `json:"event"`
	RoomID     string `json:"roomId"`
	Name       string `json:"name"`
	MaxPlayers Int    `json:"maxPlayers"`
	Action     string `json:"action"`
	Amount     Int    `json:"amount"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Response is a message sent to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   KeyStatus,
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse returns the error event for a failed request
func ErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     KeyError,
		Value:   err.Error(),
		Context: ctx,
	}
}

// LogMessage is an entry in a room's hand history
// If PlayerIDs is empty, it's a general statement, otherwise the message reads like "{player} did X, Y, Z"
type LogMessage struct {
	UUID      string    `json:"uuid"`
	PlayerIDs []string  `json:"playerIds"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID string, format string, a ...interface{}) *LogMessage {
	var playerIDs []string
	if playerID != "" {
		playerIDs = []string{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

// Int is an integer the client can send either as a number or as a numeric string
// Anything else decodes to zero, and values are clamped to 0..MaxInt
type Int int

// MaxInt is the largest value an Int decodes to
const MaxInt = math.MaxInt32

// UnmarshalJSON decodes a number or a numeric string
func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		b = bytes.TrimSpace([]byte(s))
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || f <= 0 {
		*i = 0
		return nil
	}

	if f >= MaxInt {
		*i = MaxInt
		return nil
	}

	*i = Int(f)
	return nil
}
