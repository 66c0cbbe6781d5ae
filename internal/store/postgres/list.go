package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/domain"
)

type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

func (r *ListRepo) Create(ctx context.Context, l *domain.List) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO lists (id, board_id, title, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.BoardID, l.Title, l.Position, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("listRepo.Create: %w", err)
	}

	return nil
}

func (r *ListRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	var l domain.List

	err := r.pool.QueryRow(ctx,
		`SELECT id, board_id, title, position, created_at, updated_at
		 FROM lists WHERE id = $1`,
		id,
	).Scan(&l.ID, &l.BoardID, &l.Title, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("listRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("listRepo.GetByID: %w", err)
	}

	return &l, nil
}

func (r *ListRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.List, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, board_id, title, position, created_at, updated_at
		 FROM lists WHERE board_id = $1
		 ORDER BY position, created_at
		 LIMIT 1000`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("listRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	var lists []*domain.List
	for rows.Next() {
		var l domain.List
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Title, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("listRepo.ListByBoard: scan: %w", err)
		}
		lists = append(lists, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listRepo.ListByBoard: rows: %w", err)
	}

	return lists, nil
}

func (r *ListRepo) PositionsByBoard(ctx context.Context, boardID uuid.UUID) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT position FROM lists WHERE board_id = $1`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("listRepo.PositionsByBoard: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("listRepo.PositionsByBoard: scan: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listRepo.PositionsByBoard: rows: %w", err)
	}

	return positions, nil
}

func (r *ListRepo) Update(ctx context.Context, l *domain.List) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE lists SET title = $1, updated_at = now() WHERE id = $2`,
		l.Title, l.ID,
	)
	if err != nil {
		return fmt.Errorf("listRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

// Delete removes the list and its cards and comments in one transaction.
func (r *ListRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("listRepo.Delete: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`DELETE FROM card_comments WHERE card_id IN (SELECT id FROM cards WHERE list_id = $1)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("listRepo.Delete: comments: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM cards WHERE list_id = $1`, id)
	if err != nil {
		return fmt.Errorf("listRepo.Delete: cards: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("listRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listRepo.Delete: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("listRepo.Delete: commit: %w", err)
	}

	return nil
}

// Reorder applies every position update in one transaction. Each update is
// scoped to boardID; a list that is missing or belongs to another board
// leaves zero rows affected, which aborts the whole batch. Position values
// land exactly as supplied.
func (r *ListRepo) Reorder(ctx context.Context, boardID uuid.UUID, updates []domain.PositionUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("listRepo.Reorder: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, u := range updates {
		tag, execErr := tx.Exec(ctx,
			`UPDATE lists SET position = $1, updated_at = now()
			 WHERE id = $2 AND board_id = $3`,
			u.Position, u.ID, boardID,
		)
		if execErr != nil {
			return fmt.Errorf("listRepo.Reorder: %w", execErr)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("listRepo.Reorder: list %s: %w", u.ID, domain.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("listRepo.Reorder: commit: %w", err)
	}

	return nil
}
