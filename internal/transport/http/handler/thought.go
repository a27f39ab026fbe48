package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
	"github.com/annaehn/happy-thoughts-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

type thoughtUsecaser interface {
	Create(ctx context.Context, message string, ownerID *string) (*domain.Thought, error)
	List(ctx context.Context) ([]*domain.Thought, error)
	Get(ctx context.Context, id string) (*domain.Thought, error)
	Update(ctx context.Context, id, message, requesterID string) (*domain.Thought, error)
	Delete(ctx context.Context, id, requesterID string) error
	Like(ctx context.Context, id string) (*domain.Thought, error)
}

type ThoughtHandler struct {
	uc     thoughtUsecaser
	logger *slog.Logger
}

func NewThoughtHandler(uc thoughtUsecaser, logger *slog.Logger) *ThoughtHandler {
	return &ThoughtHandler{uc: uc, logger: logger.With("component", "thought_handler")}
}

type thoughtRequest struct {
	Message string `json:"message" binding:"required,min=5,max=140"`
}

type thoughtResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Hearts    int       `json:"hearts"`
	Username  *string   `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toThoughtResponse(t *domain.Thought) thoughtResponse {
	return thoughtResponse{
		ID:        t.ID,
		Message:   t.Message,
		Hearts:    t.Hearts,
		Username:  t.OwnerUsername,
		CreatedAt: t.CreatedAt,
	}
}

// POST /thoughts
func (h *ThoughtHandler) Create(c *gin.Context) {
	var req thoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Absent in the anonymous deployment when no token was presented.
	var ownerID *string
	if id := c.GetString("userID"); id != "" {
		ownerID = &id
	}

	thought, err := h.uc.Create(c.Request.Context(), req.Message, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrMessageLength) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMessageLength.Error()})
			return
		}
		h.logger.Error("create thought", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.ThoughtsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, toThoughtResponse(thought))
}

// GET /thoughts
func (h *ThoughtHandler) List(c *gin.Context) {
	thoughts, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list thoughts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := make([]thoughtResponse, 0, len(thoughts))
	for _, t := range thoughts {
		resp = append(resp, toThoughtResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /thoughts/:id
func (h *ThoughtHandler) GetByID(c *gin.Context) {
	thought, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondThoughtError(c, err, "get thought")
		return
	}
	c.JSON(http.StatusOK, toThoughtResponse(thought))
}

// PUT /thoughts/:id
func (h *ThoughtHandler) Update(c *gin.Context) {
	var req thoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thought, err := h.uc.Update(c.Request.Context(), c.Param("id"), req.Message, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotThoughtOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": errEditNotOwner})
			return
		}
		h.respondThoughtError(c, err, "update thought")
		return
	}
	c.JSON(http.StatusOK, toThoughtResponse(thought))
}

// DELETE /thoughts/:id
func (h *ThoughtHandler) Delete(c *gin.Context) {
	err := h.uc.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotThoughtOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": errDeleteNotOwner})
			return
		}
		h.respondThoughtError(c, err, "delete thought")
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /thoughts/:id/like
func (h *ThoughtHandler) Like(c *gin.Context) {
	thought, err := h.uc.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondThoughtError(c, err, "like thought")
		return
	}

	metrics.LikesTotal.Inc()
	c.JSON(http.StatusOK, toThoughtResponse(thought))
}

func (h *ThoughtHandler) respondThoughtError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrInvalidThoughtID):
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
	case errors.Is(err, domain.ErrThoughtNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errThoughtNotFound})
	case errors.Is(err, domain.ErrMessageLength):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMessageLength.Error()})
	default:
		h.logger.Error(op, "thought_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
