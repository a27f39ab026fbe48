package repository

import (
	"context"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
)

type UserRepository interface {
	// Create inserts the user and returns the stored row. Uniqueness of
	// username and email is enforced by the storage layer, not checked here.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
