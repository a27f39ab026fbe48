package usecase

import (
	"context"
	"fmt"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
	"github.com/annaehn/happy-thoughts-api/internal/repository"
	"github.com/google/uuid"
)

type ThoughtUsecase struct {
	repo repository.ThoughtRepository

	// requireOwner is false in the anonymous deployment, where anyone may
	// edit or delete any thought and posts carry no owner.
	requireOwner bool
}

func NewThoughtUsecase(repo repository.ThoughtRepository, requireOwner bool) *ThoughtUsecase {
	return &ThoughtUsecase{repo: repo, requireOwner: requireOwner}
}

func (u *ThoughtUsecase) Create(ctx context.Context, message string, ownerID *string) (*domain.Thought, error) {
	if !domain.ValidMessage(message) {
		return nil, domain.ErrMessageLength
	}

	created, err := u.repo.Create(ctx, &domain.Thought{Message: message, OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("create thought: %w", err)
	}
	return created, nil
}

func (u *ThoughtUsecase) List(ctx context.Context) ([]*domain.Thought, error) {
	thoughts, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list thoughts: %w", err)
	}
	return thoughts, nil
}

func (u *ThoughtUsecase) Get(ctx context.Context, id string) (*domain.Thought, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return u.repo.GetByID(ctx, id)
}

func (u *ThoughtUsecase) Update(ctx context.Context, id, message, requesterID string) (*domain.Thought, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	thought, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.checkOwner(thought, requesterID); err != nil {
		return nil, err
	}
	if !domain.ValidMessage(message) {
		return nil, domain.ErrMessageLength
	}

	updated, err := u.repo.UpdateMessage(ctx, id, message)
	if err != nil {
		return nil, fmt.Errorf("update thought: %w", err)
	}
	return updated, nil
}

func (u *ThoughtUsecase) Delete(ctx context.Context, id, requesterID string) error {
	if err := validateID(id); err != nil {
		return err
	}

	thought, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.checkOwner(thought, requesterID); err != nil {
		return err
	}

	return u.repo.Delete(ctx, id)
}

// Like increments the heart counter. No ownership check: anyone, including
// anonymous callers and the owner, may like any thought.
func (u *ThoughtUsecase) Like(ctx context.Context, id string) (*domain.Thought, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return u.repo.IncrementHearts(ctx, id)
}

func (u *ThoughtUsecase) checkOwner(thought *domain.Thought, requesterID string) error {
	if !u.requireOwner {
		return nil
	}
	if thought.OwnerID == nil || *thought.OwnerID != requesterID {
		return domain.ErrNotThoughtOwner
	}
	return nil
}

// validateID distinguishes a malformed id (400) from a well-formed id that
// matches no record (404).
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidThoughtID
	}
	return nil
}
