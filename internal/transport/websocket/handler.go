package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-cpu/internal/domain"
	"github.com/iamasit07/connect4-cpu/internal/service/game"
	"github.com/iamasit07/connect4-cpu/pkg/auth"
	"github.com/iamasit07/connect4-cpu/pkg/httputil"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	SessionManager *game.SessionManager
	BotMoveDelay   time.Duration
	Upgrader       websocket.Upgrader
}

// NewHandler creates a new WebSocket handler with dependencies
func NewHandler(sm *game.SessionManager, botMoveDelay time.Duration) *Handler {
	return &Handler{
		SessionManager: sm,
		BotMoveDelay:   botMoveDelay,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket authenticates the game token, then upgrades the connection
func (h *Handler) HandleWebSocket(c *gin.Context) {
	tokenString, err := httputil.GetTokenFromRequest(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	claims, err := auth.ValidateGameToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	session, ok := h.SessionManager.GetSessionByGameID(claims.GameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(c.Request.Context(), NewClient(conn, claims.GameID), session)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, client *Client, session *game.GameSession) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		client.Close()
		log.Printf("[WS] Connection closed for game %s", client.gameID)
	}()

	// Set read deadline to detect stale connections
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					return
				}
			}
		}
	}()

	log.Printf("[WS] Connection opened for game %s", client.gameID)
	client.SendMessage(stateMessage(session.Snapshot()))

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Player disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			client.SendError("Invalid message format")
			continue
		}

		if err := h.processMessage(ctx, client, session, msg); err != nil {
			log.Printf("[WS] Write failed for game %s: %v", client.gameID, err)
			return
		}
	}
}

// processMessage routes specific actions. Only write errors are returned;
// game errors are reported to the player.
func (h *Handler) processMessage(ctx context.Context, client *Client, session *game.GameSession, msg domain.ClientMessage) error {
	switch msg.Type {
	case "get_state":
		return client.SendMessage(stateMessage(session.Snapshot()))

	case "make_move":
		events, err := session.HandleMove(msg.Column)
		if err != nil {
			return client.SendError(err.Error())
		}
		if err := client.SendMessages(events); err != nil {
			return err
		}

		// Small delay to feel natural
		if h.BotMoveDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(h.BotMoveDelay):
			}
		}

		botEvents, err := session.HandleBotMove(ctx)
		if err != nil {
			log.Printf("[BOT] Error handling bot move: %v", err)
			return client.SendError("Bot failed to move")
		}
		return client.SendMessages(botEvents)

	default:
		return client.SendError("Unknown message type: " + msg.Type)
	}
}

func stateMessage(view game.GameView) domain.ServerMessage {
	return domain.ServerMessage{
		Type:        "game_state",
		GameID:      view.GameID,
		Opponent:    view.Opponent,
		YourPlayer:  int(game.HumanPlayer),
		CurrentTurn: view.CurrentTurn,
		Board:       view.Board,
		Winner:      view.Winner,
		Reason:      view.Reason,
	}
}
