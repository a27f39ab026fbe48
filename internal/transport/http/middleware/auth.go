package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/annaehn/happy-thoughts-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const errUnauthenticated = "Unauthenticated"

// Auth validates a Bearer JWT and sets "userID" in the gin context.
// Verification is stateless: signature and expiry only, no store lookup.
func Auth(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromHeader(c, jwtKey)
		if !ok {
			metrics.AuthFailuresTotal.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthenticated})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid Bearer token is present
// and lets the request continue anonymously otherwise. Used by the
// anonymous deployment so posts from logged-in clients keep attribution.
func OptionalAuth(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := userIDFromHeader(c, jwtKey); ok {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

func userIDFromHeader(c *gin.Context, jwtKey []byte) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	rawToken := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
