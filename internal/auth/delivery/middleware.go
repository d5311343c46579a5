package delivery

import (
	"net/http"
	"strings"

	"taskflow-backend/internal/auth/usecase"
	"taskflow-backend/internal/shared"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey      = "userID"
	workspaceIDKey = "workspaceID"
)

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		actor, err := authUsecase.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userIDKey, string(actor.UserID))
		c.Set(workspaceIDKey, string(actor.WorkspaceID))
		c.Next()
	}
}

// CurrentActor returns the caller stored by AuthMiddleware.
func CurrentActor(c *gin.Context) shared.Actor {
	return shared.Actor{
		UserID:      shared.UserID(c.GetString(userIDKey)),
		WorkspaceID: shared.WorkspaceID(c.GetString(workspaceIDKey)),
	}
}
