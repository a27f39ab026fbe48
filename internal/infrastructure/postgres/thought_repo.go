package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/annaehn/happy-thoughts-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ThoughtRepository struct {
	pool *pgxpool.Pool
}

func NewThoughtRepository(pool *pgxpool.Pool) *ThoughtRepository {
	return &ThoughtRepository{pool: pool}
}

func (r *ThoughtRepository) Create(ctx context.Context, thought *domain.Thought) (*domain.Thought, error) {
	// The join after insert resolves the owner's display name in the same
	// round trip, so handlers never see a bare user ID.
	query := `
		WITH inserted AS (
			INSERT INTO thoughts (message, user_id)
			VALUES ($1, $2)
			RETURNING id, message, hearts, user_id, created_at
		)
		SELECT i.id, i.message, i.hearts, i.user_id, u.username, i.created_at
		FROM inserted i
		LEFT JOIN users u ON u.id = i.user_id`

	return scanThought(r.pool.QueryRow(ctx, query, thought.Message, thought.OwnerID))
}

func (r *ThoughtRepository) List(ctx context.Context) ([]*domain.Thought, error) {
	query := `
		SELECT t.id, t.message, t.hearts, t.user_id, u.username, t.created_at
		FROM thoughts t
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list thoughts: %w", err)
	}
	defer rows.Close()

	var thoughts []*domain.Thought
	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			return nil, err
		}
		thoughts = append(thoughts, t)
	}
	return thoughts, rows.Err()
}

func (r *ThoughtRepository) GetByID(ctx context.Context, id string) (*domain.Thought, error) {
	query := `
		SELECT t.id, t.message, t.hearts, t.user_id, u.username, t.created_at
		FROM thoughts t
		LEFT JOIN users u ON u.id = t.user_id
		WHERE t.id = $1`

	return scanThought(r.pool.QueryRow(ctx, query, id))
}

func (r *ThoughtRepository) UpdateMessage(ctx context.Context, id, message string) (*domain.Thought, error) {
	query := `
		WITH updated AS (
			UPDATE thoughts
			SET message = $2
			WHERE id = $1
			RETURNING id, message, hearts, user_id, created_at
		)
		SELECT u.id, u.message, u.hearts, u.user_id, usr.username, u.created_at
		FROM updated u
		LEFT JOIN users usr ON usr.id = u.user_id`

	return scanThought(r.pool.QueryRow(ctx, query, id, message))
}

func (r *ThoughtRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM thoughts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete thought: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrThoughtNotFound
	}
	return nil
}

func (r *ThoughtRepository) IncrementHearts(ctx context.Context, id string) (*domain.Thought, error) {
	// hearts = hearts + 1 is applied store-side, so concurrent likes on the
	// same thought each land.
	query := `
		WITH updated AS (
			UPDATE thoughts
			SET hearts = hearts + 1
			WHERE id = $1
			RETURNING id, message, hearts, user_id, created_at
		)
		SELECT u.id, u.message, u.hearts, u.user_id, usr.username, u.created_at
		FROM updated u
		LEFT JOIN users usr ON usr.id = u.user_id`

	return scanThought(r.pool.QueryRow(ctx, query, id))
}

func scanThought(row pgx.Row) (*domain.Thought, error) {
	var t domain.Thought
	err := row.Scan(&t.ID, &t.Message, &t.Hearts, &t.OwnerID, &t.OwnerUsername, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrThoughtNotFound
		}
		return nil, fmt.Errorf("scan thought: %w", err)
	}
	return &t, nil
}
