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

type CardRepo struct {
	pool *pgxpool.Pool
}

func NewCardRepo(pool *pgxpool.Pool) *CardRepo {
	return &CardRepo{pool: pool}
}

func (r *CardRepo) Create(ctx context.Context, c *domain.Card) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cards (id, list_id, title, description, due_date, labels, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.ListID, c.Title, c.Description, c.DueDate, c.Labels, c.Position,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("cardRepo.Create: %w", err)
	}

	return nil
}

func (r *CardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var c domain.Card

	err := r.pool.QueryRow(ctx,
		`SELECT id, list_id, title, description, due_date, labels, position, created_at, updated_at
		 FROM cards WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.ListID, &c.Title, &c.Description, &c.DueDate, &c.Labels,
		&c.Position, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("cardRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cardRepo.GetByID: %w", err)
	}

	return &c, nil
}

func (r *CardRepo) ListByList(ctx context.Context, listID uuid.UUID) ([]*domain.Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, list_id, title, description, due_date, labels, position, created_at, updated_at
		 FROM cards WHERE list_id = $1
		 ORDER BY position, created_at
		 LIMIT 1000`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("cardRepo.ListByList: %w", err)
	}
	defer rows.Close()

	return scanCards(rows, "cardRepo.ListByList")
}

func (r *CardRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.list_id, c.title, c.description, c.due_date, c.labels, c.position, c.created_at, c.updated_at
		 FROM cards c
		 JOIN lists l ON l.id = c.list_id
		 WHERE l.board_id = $1
		 ORDER BY l.position, c.position, c.created_at
		 LIMIT 5000`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("cardRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	return scanCards(rows, "cardRepo.ListByBoard")
}

func (r *CardRepo) PositionsByList(ctx context.Context, listID uuid.UUID) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT position FROM cards WHERE list_id = $1`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("cardRepo.PositionsByList: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("cardRepo.PositionsByList: scan: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cardRepo.PositionsByList: rows: %w", err)
	}

	return positions, nil
}

func (r *CardRepo) Update(ctx context.Context, c *domain.Card) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cards SET title = $1, description = $2, due_date = $3, labels = $4, updated_at = now()
		 WHERE id = $5`,
		c.Title, c.Description, c.DueDate, c.Labels, c.ID,
	)
	if err != nil {
		return fmt.Errorf("cardRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cardRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *CardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cardRepo.Delete: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx, `DELETE FROM card_comments WHERE card_id = $1`, id)
	if err != nil {
		return fmt.Errorf("cardRepo.Delete: comments: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("cardRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cardRepo.Delete: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("cardRepo.Delete: commit: %w", err)
	}

	return nil
}

// Move sets list_id and position in one statement. A reader either sees the
// card in its old list at its old rank or in the target list at the new
// rank, never in between.
func (r *CardRepo) Move(ctx context.Context, cardID, targetListID uuid.UUID, position int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cards SET list_id = $1, position = $2, updated_at = now() WHERE id = $3`,
		targetListID, position, cardID,
	)
	if err != nil {
		return fmt.Errorf("cardRepo.Move: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cardRepo.Move: %w", domain.ErrNotFound)
	}

	return nil
}

// Reorder applies every position update in one transaction, scoped to
// listID. See ListRepo.Reorder for the abort semantics.
func (r *CardRepo) Reorder(ctx context.Context, listID uuid.UUID, updates []domain.PositionUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cardRepo.Reorder: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, u := range updates {
		tag, execErr := tx.Exec(ctx,
			`UPDATE cards SET position = $1, updated_at = now()
			 WHERE id = $2 AND list_id = $3`,
			u.Position, u.ID, listID,
		)
		if execErr != nil {
			return fmt.Errorf("cardRepo.Reorder: %w", execErr)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("cardRepo.Reorder: card %s: %w", u.ID, domain.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("cardRepo.Reorder: commit: %w", err)
	}

	return nil
}

func scanCards(rows pgx.Rows, caller string) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(
			&c.ID, &c.ListID, &c.Title, &c.Description, &c.DueDate, &c.Labels,
			&c.Position, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		cards = append(cards, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return cards, nil
}
