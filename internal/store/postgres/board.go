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

type BoardRepo struct {
	pool *pgxpool.Pool
}

func NewBoardRepo(pool *pgxpool.Pool) *BoardRepo {
	return &BoardRepo{pool: pool}
}

// Create inserts the board together with its owner member row. Both land in
// one transaction so a board is never observable without its owner grant.
func (r *BoardRepo) Create(ctx context.Context, b *domain.Board) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("boardRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`INSERT INTO boards (id, title, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Title, b.OwnerID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Create: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO board_members (board_id, user_id, role, created_at)
		 VALUES ($1, $2, $3, $4)`,
		b.ID, b.OwnerID, domain.RoleOwner, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Create: owner member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("boardRepo.Create: commit: %w", err)
	}

	return nil
}

func (r *BoardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var b domain.Board

	err := r.pool.QueryRow(ctx,
		`SELECT id, title, owner_id, created_at, updated_at
		 FROM boards WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Title, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("boardRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("boardRepo.GetByID: %w", err)
	}

	return &b, nil
}

func (r *BoardRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT b.id, b.title, b.owner_id, b.created_at, b.updated_at
		 FROM boards b
		 LEFT JOIN board_members m ON m.board_id = b.id
		 WHERE b.owner_id = $1 OR m.user_id = $1
		 ORDER BY b.created_at
		 LIMIT 1000`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("boardRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.Title, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("boardRepo.ListForUser: scan: %w", err)
		}
		boards = append(boards, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("boardRepo.ListForUser: rows: %w", err)
	}

	return boards, nil
}

func (r *BoardRepo) Update(ctx context.Context, b *domain.Board) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE boards SET title = $1, updated_at = now() WHERE id = $2`,
		b.Title, b.ID,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("boardRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

// Delete removes the board and every descendant row (comments, cards, lists,
// members) in one transaction. The schema also carries ON DELETE CASCADE,
// but the explicit deletes keep the no-orphan invariant independent of it.
func (r *BoardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`DELETE FROM card_comments WHERE card_id IN (
		   SELECT c.id FROM cards c
		   JOIN lists l ON l.id = c.list_id
		   WHERE l.board_id = $1)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: comments: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM cards WHERE list_id IN (SELECT id FROM lists WHERE board_id = $1)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: cards: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM lists WHERE board_id = $1`, id)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: lists: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM board_members WHERE board_id = $1`, id)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: members: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("boardRepo.Delete: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("boardRepo.Delete: commit: %w", err)
	}

	return nil
}

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

func (r *MemberRepo) Add(ctx context.Context, m *domain.Member) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO board_members (board_id, user_id, role, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (board_id, user_id) DO NOTHING`,
		m.BoardID, m.UserID, m.Role, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("memberRepo.Add: %w", err)
	}

	return nil
}

func (r *MemberRepo) Remove(ctx context.Context, boardID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM board_members WHERE board_id = $1 AND user_id = $2`,
		boardID, userID,
	)
	if err != nil {
		return fmt.Errorf("memberRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("memberRepo.Remove: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MemberRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT board_id, user_id, role, created_at
		 FROM board_members WHERE board_id = $1
		 ORDER BY created_at`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("memberRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.BoardID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("memberRepo.ListByBoard: scan: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("memberRepo.ListByBoard: rows: %w", err)
	}

	return members, nil
}
