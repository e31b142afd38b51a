package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-cpu/internal/transport/http/middleware"
)

// NewRouter wires the game API. ws may be nil to leave out /ws.
func NewRouter(games *GameHandler, ws gin.HandlerFunc, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.POST("/api/games", games.CreateGame)
	router.GET("/api/watch", games.GetLiveGames)

	protected := router.Group("/api/games/:id")
	protected.Use(middleware.GameAuthMiddleware())
	{
		protected.GET("", games.GetGame)
		protected.POST("/moves", games.MakeMove)
		protected.GET("/replay", games.GetReplay)
		protected.DELETE("", games.DeleteGame)
	}

	if ws != nil {
		router.GET("/ws", ws)
	}

	return router
}
