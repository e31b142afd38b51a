package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

type liveGameResponse struct {
	GameID     string `json:"gameId"`
	Opponent   string `json:"opponent"`
	Difficulty string `json:"difficulty"`
	Status     string `json:"status"`
	MoveCount  int    `json:"moveCount"`
	StartedAt  string `json:"startedAt"`
}

// GetLiveGames lists every game held in memory, newest first
func (h *GameHandler) GetLiveGames(c *gin.Context) {
	views := h.GameService.Sessions.Snapshots()
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})

	response := make([]liveGameResponse, 0, len(views))
	for _, v := range views {
		response = append(response, liveGameResponse{
			GameID:     v.GameID,
			Opponent:   v.Opponent,
			Difficulty: v.Difficulty,
			Status:     string(v.Status),
			MoveCount:  len(v.Moves),
			StartedAt:  v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, response)
}
