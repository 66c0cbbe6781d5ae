package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"` // may be empty for OAuth-only users
	PasswordHash string    `json:"-"`     // argon2id, empty if OAuth-only
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserOAuthLink struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Provider     string // "google" or "github"
	ProviderID   string
	AccessToken  string // encrypted
	RefreshToken string // encrypted
	CreatedAt    time.Time
}

type APIKey struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	KeyHash    string // SHA-256
	Prefix     string // first 8 chars for identification
	LastUsedAt *time.Time // nullable
	ExpiresAt  *time.Time // nullable
	CreatedAt  time.Time
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error

	// OAuth links
	CreateOAuthLink(ctx context.Context, link *UserOAuthLink) error
	GetOAuthLink(ctx context.Context, provider, providerID string) (*UserOAuthLink, error)
	DeleteOAuthLink(ctx context.Context, id uuid.UUID) error

	// API keys
	CreateAPIKey(ctx context.Context, key *APIKey) error
	GetAPIKeyByPrefix(ctx context.Context, prefix string) (*APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	DeleteAPIKey(ctx context.Context, userID, id uuid.UUID) error
	ListAPIKeys(ctx context.Context, userID uuid.UUID) ([]*APIKey, error)
}
