package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-cpu/internal/domain"
)

const writeWait = 10 * time.Second

// Client wraps one socket. gorilla connections allow a single concurrent
// writer, so every write goes through mu.
type Client struct {
	conn   *websocket.Conn
	gameID string
	mu     sync.Mutex
}

func NewClient(conn *websocket.Conn, gameID string) *Client {
	return &Client{conn: conn, gameID: gameID}
}

// SendMessage sends a JSON message to the player
func (c *Client) SendMessage(message domain.ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *Client) SendMessages(messages []domain.ServerMessage) error {
	for _, m := range messages {
		if err := c.SendMessage(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) SendError(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: message})
}

func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *Client) Close() error {
	return c.conn.Close()
}
