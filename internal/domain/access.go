package domain

import (
	"context"

	"github.com/google/uuid"
)

type AccessLevel string

const (
	AccessOwner  AccessLevel = "owner"
	AccessMember AccessLevel = "member"
	AccessDenied AccessLevel = "denied"
)

// AccessContext is the access data of one board, loaded once per operation:
// the board ID, its owner and the set of member user IDs. Evaluation is pure;
// whether the board exists at all is decided by the loader beforehand.
type AccessContext struct {
	BoardID   uuid.UUID
	OwnerID   uuid.UUID
	MemberIDs map[uuid.UUID]struct{}
}

// Evaluate decides the caller's access level. Owner wins over membership;
// anyone else is denied.
func (a *AccessContext) Evaluate(userID uuid.UUID) AccessLevel {
	if userID == a.OwnerID {
		return AccessOwner
	}
	if _, ok := a.MemberIDs[userID]; ok {
		return AccessMember
	}
	return AccessDenied
}

// CanContribute reports whether the user may read the board and create,
// update, delete, move and reorder its lists and cards.
func (a *AccessContext) CanContribute(userID uuid.UUID) bool {
	return a.Evaluate(userID) != AccessDenied
}

// CanAdminister reports whether the user may update or delete the board
// itself. Only the owner can.
func (a *AccessContext) CanAdminister(userID uuid.UUID) bool {
	return a.Evaluate(userID) == AccessOwner
}

// AccessLoader resolves the AccessContext of the board owning an entity.
// Each method returns ErrNotFound when the entity (or any link up to its
// board) is absent, so authorization is only ever evaluated against a board
// that exists.
type AccessLoader interface {
	ByBoard(ctx context.Context, boardID uuid.UUID) (*AccessContext, error)
	ByList(ctx context.Context, listID uuid.UUID) (*AccessContext, error)
	ByCard(ctx context.Context, cardID uuid.UUID) (*AccessContext, error)
}
