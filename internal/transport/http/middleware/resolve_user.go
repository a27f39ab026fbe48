package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
	"github.com/annaehn/happy-thoughts-api/internal/repository"
	"github.com/gin-gonic/gin"
)

// ResolveUser runs after Auth. The token is stateless, so the user it names
// may have been removed since issuance; a token for a missing user is
// rejected the same way as an invalid one. On success the display username
// is put in the gin context for handlers.
func ResolveUser(repo repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		user, err := repo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthenticated})
				return
			}
			logger.ErrorContext(c.Request.Context(), "resolve user", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Internal server error"})
			return
		}

		c.Set("username", user.Username)
		c.Next()
	}
}
