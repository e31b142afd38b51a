package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-cpu/internal/domain"
	"github.com/iamasit07/connect4-cpu/internal/service/game"
	"github.com/iamasit07/connect4-cpu/pkg/auth"
)

type GameHandler struct {
	GameService       *game.Service
	DefaultDifficulty string
}

func NewGameHandler(gs *game.Service, defaultDifficulty string) *GameHandler {
	return &GameHandler{GameService: gs, DefaultDifficulty: defaultDifficulty}
}

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
	Depth      int    `json:"depth"`
	BotFirst   bool   `json:"botFirst"`
}

type createGameResponse struct {
	Game   game.GameView          `json:"game"`
	Token  string                 `json:"token"`
	Events []domain.ServerMessage `json:"events"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Events []domain.ServerMessage `json:"events"`
	Game   game.GameView          `json:"game"`
}

// CreateGame starts a game against the bot and hands back the token
// needed to play it.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}
	if req.Difficulty == "" {
		req.Difficulty = h.DefaultDifficulty
	}

	session, events, err := h.GameService.Sessions.CreateSession(c.Request.Context(), req.Difficulty, req.Depth, req.BotFirst)
	if err != nil {
		log.Printf("[GAME] Failed to create game: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	token, err := auth.GenerateGameToken(session.GameID)
	if err != nil {
		log.Printf("[GAME] Failed to sign token for %s: %v", session.GameID, err)
		h.GameService.Sessions.RemoveSession(session.GameID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	c.JSON(http.StatusCreated, createGameResponse{
		Game:   session.Snapshot(),
		Token:  token,
		Events: events,
	})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.GameService.Sessions.GetSessionByGameID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	gameID := c.Param("id")
	events, err := h.GameService.PlayTurn(c.Request.Context(), gameID, *req.Column)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "events": events})
		return
	}

	session, ok := h.GameService.Sessions.GetSessionByGameID(gameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, moveResponse{Events: events, Game: session.Snapshot()})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.GameService.Sessions.RemoveSession(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, domain.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, domain.ErrGameFinished):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
