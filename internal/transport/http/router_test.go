package httptransport_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
	httptransport "github.com/annaehn/happy-thoughts-api/internal/transport/http"
	"github.com/annaehn/happy-thoughts-api/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const routerTestKey = "router-test-secret-at-least-32ch!!"

func init() {
	gin.SetMode(gin.TestMode)
}

type stubThoughtUsecase struct {
	createdOwner **string // records the owner pointer passed to Create
}

func (s *stubThoughtUsecase) Create(_ context.Context, message string, ownerID *string) (*domain.Thought, error) {
	if s.createdOwner != nil {
		*s.createdOwner = ownerID
	}
	return &domain.Thought{ID: "t-1", Message: message, OwnerID: ownerID, CreatedAt: time.Now()}, nil
}

func (s *stubThoughtUsecase) List(_ context.Context) ([]*domain.Thought, error) {
	return nil, nil
}

func (s *stubThoughtUsecase) Get(_ context.Context, _ string) (*domain.Thought, error) {
	return nil, domain.ErrThoughtNotFound
}

func (s *stubThoughtUsecase) Update(_ context.Context, id, message, _ string) (*domain.Thought, error) {
	return &domain.Thought{ID: id, Message: message}, nil
}

func (s *stubThoughtUsecase) Delete(_ context.Context, _, _ string) error { return nil }

func (s *stubThoughtUsecase) Like(_ context.Context, id string) (*domain.Thought, error) {
	return &domain.Thought{ID: id, Hearts: 1}, nil
}

type stubUserRepo struct{}

func (stubUserRepo) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	panic("not used")
}

func (stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	panic("not used")
}

func (stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Username: "ada"}, nil
}

func newRouter(uc *stubThoughtUsecase, anonymous bool) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	th := handler.NewThoughtHandler(uc, logger)
	ah := handler.NewAuthHandler(nil, logger)
	return httptransport.NewRouter(logger, ah, th, stubUserRepo{}, []byte(routerTestKey), anonymous)
}

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(routerTestKey))
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return s
}

func TestRouter_AuthenticatedVariant_PostWithoutTokenIs401(t *testing.T) {
	r := newRouter(&stubThoughtUsecase{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/thoughts", strings.NewReader(`{"message":"hello there"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRouter_AuthenticatedVariant_PostWithTokenAttributesOwner(t *testing.T) {
	var owner *string
	r := newRouter(&stubThoughtUsecase{createdOwner: &owner}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/thoughts", strings.NewReader(`{"message":"hello there"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if owner == nil || *owner != "user-1" {
		t.Errorf("owner = %v, want user-1", owner)
	}
}

func TestRouter_AnonymousVariant_PostWithoutTokenIs201Unowned(t *testing.T) {
	var owner *string
	r := newRouter(&stubThoughtUsecase{createdOwner: &owner}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/thoughts", strings.NewReader(`{"message":"hello there"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if owner != nil {
		t.Errorf("owner = %q, want nil for an anonymous post", *owner)
	}
}

func TestRouter_AnonymousVariant_TokenStillAttributes(t *testing.T) {
	var owner *string
	r := newRouter(&stubThoughtUsecase{createdOwner: &owner}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/thoughts", strings.NewReader(`{"message":"hello there"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-9"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if owner == nil || *owner != "user-9" {
		t.Errorf("owner = %v, want user-9", owner)
	}
}

func TestRouter_RootListsEndpoints(t *testing.T) {
	r := newRouter(&stubThoughtUsecase{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var endpoints []struct {
		Method string `json:"method"`
		Path   string `json:"path"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &endpoints); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	found := false
	for _, e := range endpoints {
		if e.Method == http.MethodPost && e.Path == "/thoughts/:id/like" {
			found = true
		}
	}
	if !found {
		t.Errorf("endpoint list %v is missing POST /thoughts/:id/like", endpoints)
	}
}
