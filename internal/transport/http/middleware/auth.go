package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-cpu/pkg/auth"
	"github.com/iamasit07/connect4-cpu/pkg/httputil"
	"github.com/iamasit07/connect4-cpu/pkg/uid"
)

const GameIDKey = "game_id"

// GameAuthMiddleware validates the game token and checks that it was
// issued for the game named in the :id path parameter.
func GameAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Param("id"); id != "" && !uid.IsGameID(id) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateGameToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if id := c.Param("id"); id != "" && id != claims.GameID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this game"})
			return
		}

		c.Set(GameIDKey, claims.GameID)
		c.Next()
	}
}
