package transport

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client wraps a single websocket connection to the game server. It owns
// exactly one connection; reconnection is the caller's concern. Reads and
// writes are serialized behind a mutex the way the pack's exchange
// adapters guard their *websocket.Conn (precedent:
// sawpanic-cryptorun's KrakenAdapter).
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
	url  string
}

// Dial opens a websocket connection to url.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", url, err)
	}
	return &Client{conn: conn, url: url}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// ReadInitialPayload blocks for the game-setup message.
func (c *Client) ReadInitialPayload() (InitialPayloadMessage, error) {
	var msg InitialPayloadMessage
	if err := c.readJSON(&msg); err != nil {
		return msg, fmt.Errorf("transport: read initial payload: %w", err)
	}
	return msg, nil
}

// ReadStep blocks for the next per-step message.
func (c *Client) ReadStep() (StepMessage, error) {
	var msg StepMessage
	if err := c.readJSON(&msg); err != nil {
		return msg, fmt.Errorf("transport: read step: %w", err)
	}
	return msg, nil
}

// PostDecision writes the boolean decision back to the server.
func (c *Client) PostDecision(admit bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteJSON(DecisionMessage{Admit: admit}); err != nil {
		return fmt.Errorf("transport: post decision: %w", err)
	}
	return nil
}

func (c *Client) readJSON(v interface{}) error {
	c.mu.Lock()
	_, data, err := c.conn.ReadMessage()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		logrus.WithError(err).Warn("transport: malformed message from game server")
		return err
	}
	return nil
}
