package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/domain"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO card_comments (id, card_id, author_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.CardID, c.AuthorID, c.Body, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("commentRepo.Create: %w", err)
	}

	return nil
}

// ListByCard returns comments newest-first, matching the card read contract.
func (r *CommentRepo) ListByCard(ctx context.Context, cardID uuid.UUID) ([]*domain.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, card_id, author_id, body, created_at
		 FROM card_comments WHERE card_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1000`,
		cardID,
	)
	if err != nil {
		return nil, fmt.Errorf("commentRepo.ListByCard: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.CardID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("commentRepo.ListByCard: scan: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("commentRepo.ListByCard: rows: %w", err)
	}

	return comments, nil
}
