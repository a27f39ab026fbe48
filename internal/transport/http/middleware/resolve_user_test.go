package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
	"github.com/annaehn/happy-thoughts-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type fakeUserRepo struct {
	findByID func(ctx context.Context, id string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	panic("not used")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	panic("not used")
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

// newResolveEngine stubs the Auth step by planting userID directly.
func newResolveEngine(repo *fakeUserRepo) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	r := gin.New()
	r.GET("/protected",
		func(c *gin.Context) { c.Set("userID", "user-1"); c.Next() },
		middleware.ResolveUser(repo, logger),
		func(c *gin.Context) {
			c.String(http.StatusOK, "%v", c.GetString("username"))
		})
	return r
}

func TestResolveUser_UserExists_SetsUsername(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "ada"}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	newResolveEngine(repo).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "ada" {
		t.Errorf("username = %q, want ada", w.Body.String())
	}
}

func TestResolveUser_UserGone_Returns401(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	newResolveEngine(repo).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for a token naming a deleted user", w.Code)
	}
}

func TestResolveUser_RepoError_Returns500(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	newResolveEngine(repo).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
