package room

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"holdem-server/pkg/protocol"
)

// Client is a client connected to the server via websockets
type Client struct {
	// ID is the stable game identity of the connection, it doubles as the player id
	ID string

	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	pitBoss *PitBoss
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, pitBoss *PitBoss) *Client {
	return &Client{
		ID:      uuid.New().String(),
		send:    make(chan interface{}, 256),
		Close:   make(chan string),
		Conn:    conn,
		pitBoss: pitBoss,
	}
}

// Send send a message to the web client
// Returns false if the client is not keeping up and the message was dropped
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return c.ID
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *protocol.PayloadIn) {
	c.pitBoss.ReceivedMessage(c, msg)
}
