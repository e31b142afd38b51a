package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type replayResponse struct {
	GameID      string    `json:"gameId"`
	FirstPlayer int       `json:"firstPlayer"`
	Moves       []int     `json:"moves"`
	Frames      [][][]int `json:"frames"`
}

// GetReplay returns the board after every ply, rebuilt from the move log.
func (h *GameHandler) GetReplay(c *gin.Context) {
	session, ok := h.GameService.Sessions.GetSessionByGameID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	view := session.Snapshot()
	frames, err := session.Replay()
	if err != nil {
		log.Printf("[GAME] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replay game"})
		return
	}

	c.JSON(http.StatusOK, replayResponse{
		GameID:      view.GameID,
		FirstPlayer: view.FirstPlayer,
		Moves:       view.Moves,
		Frames:      frames,
	})
}
