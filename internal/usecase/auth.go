package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
	"github.com/annaehn/happy-thoughts-api/internal/email"
	"github.com/annaehn/happy-thoughts-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Issued tokens are stateless: a user may hold any number of concurrently
// valid tokens and none can be revoked before expiry.
const tokenTTL = 7 * 24 * time.Hour

type AuthUsecase struct {
	users  repository.UserRepository
	email  email.Sender
	jwtKey []byte
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, jwtKey []byte, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		email:  emailSender,
		jwtKey: jwtKey,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register hashes the password, stores the user, and returns the user with a
// fresh token. Hashing happens here, explicitly, so the plaintext never
// reaches the repository. Duplicate username/email surfaces as
// domain.ErrDuplicateUser via the storage layer's unique indexes.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, "", domain.ErrDuplicateUser
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	// Best effort: a failed welcome email must not fail the registration.
	if err := u.email.Send(ctx, user.Email, "Welcome to Happy Thoughts",
		fmt.Sprintf("<p>Hi %s, your account is ready. Go post a happy thought!</p>", user.Username),
	); err != nil {
		u.logger.WarnContext(ctx, "welcome email", "error", err)
	}

	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// A missing user and a wrong password both return ErrInvalidCredentials so
// the response never reveals which part was wrong.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := u.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a stateless HS256 identity token valid for seven days.
func (u *AuthUsecase) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
