package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corkboard/corkboard/internal/domain"
)

// AccessRepo loads the AccessContext of the board owning an entity in a
// single query: board id, owner id and the full member set. Handlers never
// re-derive access data piecemeal.
type AccessRepo struct {
	pool *pgxpool.Pool
}

func NewAccessRepo(pool *pgxpool.Pool) *AccessRepo {
	return &AccessRepo{pool: pool}
}

func (r *AccessRepo) ByBoard(ctx context.Context, boardID uuid.UUID) (*domain.AccessContext, error) {
	return r.load(ctx, "accessRepo.ByBoard",
		`SELECT b.id, b.owner_id, m.user_id
		 FROM boards b
		 LEFT JOIN board_members m ON m.board_id = b.id
		 WHERE b.id = $1`,
		boardID,
	)
}

func (r *AccessRepo) ByList(ctx context.Context, listID uuid.UUID) (*domain.AccessContext, error) {
	return r.load(ctx, "accessRepo.ByList",
		`SELECT b.id, b.owner_id, m.user_id
		 FROM lists l
		 JOIN boards b ON b.id = l.board_id
		 LEFT JOIN board_members m ON m.board_id = b.id
		 WHERE l.id = $1`,
		listID,
	)
}

func (r *AccessRepo) ByCard(ctx context.Context, cardID uuid.UUID) (*domain.AccessContext, error) {
	return r.load(ctx, "accessRepo.ByCard",
		`SELECT b.id, b.owner_id, m.user_id
		 FROM cards c
		 JOIN lists l ON l.id = c.list_id
		 JOIN boards b ON b.id = l.board_id
		 LEFT JOIN board_members m ON m.board_id = b.id
		 WHERE c.id = $1`,
		cardID,
	)
}

func (r *AccessRepo) load(ctx context.Context, caller, query string, id uuid.UUID) (*domain.AccessContext, error) {
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}
	defer rows.Close()

	var (
		access *domain.AccessContext
		found  bool
	)

	for rows.Next() {
		var (
			boardID  uuid.UUID
			ownerID  uuid.UUID
			memberID *uuid.UUID // NULL when the board has no member rows
		)
		if err := rows.Scan(&boardID, &ownerID, &memberID); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}

		if !found {
			access = &domain.AccessContext{
				BoardID:   boardID,
				OwnerID:   ownerID,
				MemberIDs: make(map[uuid.UUID]struct{}),
			}
			found = true
		}
		if memberID != nil {
			access.MemberIDs[*memberID] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	if !found {
		return nil, fmt.Errorf("%s: %w", caller, domain.ErrNotFound)
	}

	return access, nil
}
