package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/annaehn/happy-thoughts-api/internal/repository"
	"github.com/annaehn/happy-thoughts-api/internal/transport/http/handler"
	"github.com/annaehn/happy-thoughts-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// NewRouter wires both deployment variants from one handler set. With
// anonymousMode off, writes require a valid token and edits/deletes an
// ownership match; with it on, the same routes are open and posts may be
// unattributed.
func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, thoughtHandler *handler.ThoughtHandler, userRepo repository.UserRepository, hmacKey []byte, anonymousMode bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	var writeMW []gin.HandlerFunc
	if anonymousMode {
		writeMW = []gin.HandlerFunc{middleware.OptionalAuth(hmacKey)}
	} else {
		writeMW = []gin.HandlerFunc{
			middleware.Auth(hmacKey),
			middleware.ResolveUser(userRepo, logger),
		}
	}

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	r.GET("/thoughts", thoughtHandler.List)
	r.POST("/thoughts", append(writeMW, thoughtHandler.Create)...)
	r.GET("/thoughts/:id", thoughtHandler.GetByID)
	r.PUT("/thoughts/:id", append(writeMW, thoughtHandler.Update)...)
	r.DELETE("/thoughts/:id", append(writeMW, thoughtHandler.Delete)...)
	r.POST("/thoughts/:id/like", thoughtHandler.Like)

	// Root lists the available endpoints, handy when poking the API by hand.
	r.GET("/", func(c *gin.Context) {
		type endpoint struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		}
		routes := r.Routes()
		endpoints := make([]endpoint, 0, len(routes))
		for _, route := range routes {
			endpoints = append(endpoints, endpoint{Method: route.Method, Path: route.Path})
		}
		c.JSON(http.StatusOK, endpoints)
	})

	return r
}
