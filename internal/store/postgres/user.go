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

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, avatar_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.AvatarURL, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, avatar_url, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, avatar_url, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}

	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $1, password_hash = $2, name = $3, avatar_url = $4, updated_at = now()
		 WHERE id = $5`,
		u.Email, u.PasswordHash, u.Name, u.AvatarURL, u.ID,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

// --- OAuth links ---

func (r *UserRepo) CreateOAuthLink(ctx context.Context, link *domain.UserOAuthLink) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_oauth_links (id, user_id, provider, provider_id, access_token, refresh_token, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		link.ID, link.UserID, link.Provider, link.ProviderID,
		link.AccessToken, link.RefreshToken, link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.CreateOAuthLink: %w", err)
	}

	return nil
}

func (r *UserRepo) GetOAuthLink(ctx context.Context, provider, providerID string) (*domain.UserOAuthLink, error) {
	var link domain.UserOAuthLink

	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, provider, provider_id, access_token, refresh_token, created_at
		 FROM user_oauth_links WHERE provider = $1 AND provider_id = $2`,
		provider, providerID,
	).Scan(&link.ID, &link.UserID, &link.Provider, &link.ProviderID,
		&link.AccessToken, &link.RefreshToken, &link.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetOAuthLink: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetOAuthLink: %w", err)
	}

	return &link, nil
}

func (r *UserRepo) DeleteOAuthLink(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_oauth_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("userRepo.DeleteOAuthLink: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.DeleteOAuthLink: %w", domain.ErrNotFound)
	}

	return nil
}

// --- API keys ---

func (r *UserRepo) CreateAPIKey(ctx context.Context, key *domain.APIKey) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO api_keys (id, user_id, name, key_hash, prefix, last_used_at, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		key.ID, key.UserID, key.Name, key.KeyHash, key.Prefix,
		key.LastUsedAt, key.ExpiresAt, key.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.CreateAPIKey: %w", err)
	}

	return nil
}

func (r *UserRepo) GetAPIKeyByPrefix(ctx context.Context, prefix string) (*domain.APIKey, error) {
	var key domain.APIKey

	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, key_hash, prefix, last_used_at, expires_at, created_at
		 FROM api_keys WHERE prefix = $1`,
		prefix,
	).Scan(&key.ID, &key.UserID, &key.Name, &key.KeyHash, &key.Prefix,
		&key.LastUsedAt, &key.ExpiresAt, &key.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetAPIKeyByPrefix: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetAPIKeyByPrefix: %w", err)
	}

	return &key, nil
}

func (r *UserRepo) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE api_keys SET last_used_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("userRepo.UpdateAPIKeyLastUsed: %w", err)
	}

	return nil
}

func (r *UserRepo) DeleteAPIKey(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM api_keys WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("userRepo.DeleteAPIKey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.DeleteAPIKey: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) ListAPIKeys(ctx context.Context, userID uuid.UUID) ([]*domain.APIKey, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, key_hash, prefix, last_used_at, expires_at, created_at
		 FROM api_keys WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListAPIKeys: %w", err)
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		var key domain.APIKey
		if err := rows.Scan(&key.ID, &key.UserID, &key.Name, &key.KeyHash, &key.Prefix,
			&key.LastUsedAt, &key.ExpiresAt, &key.CreatedAt); err != nil {
			return nil, fmt.Errorf("userRepo.ListAPIKeys: scan: %w", err)
		}
		keys = append(keys, &key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("userRepo.ListAPIKeys: rows: %w", err)
	}

	return keys, nil
}
