package repository

import (
	"context"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
)

type ThoughtRepository interface {
	Create(ctx context.Context, thought *domain.Thought) (*domain.Thought, error)
	// List returns every thought ordered by creation time, newest first,
	// with the owner resolved to a display username where present.
	List(ctx context.Context) ([]*domain.Thought, error)
	GetByID(ctx context.Context, id string) (*domain.Thought, error)
	// UpdateMessage replaces the message only; hearts and created_at are
	// left untouched.
	UpdateMessage(ctx context.Context, id, message string) (*domain.Thought, error)
	Delete(ctx context.Context, id string) error
	// IncrementHearts bumps the like counter by exactly one as a single
	// store-side operation, so concurrent likes never lose updates.
	IncrementHearts(ctx context.Context, id string) (*domain.Thought, error)
}
