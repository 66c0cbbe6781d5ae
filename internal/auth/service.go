package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/secrets"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
	ErrUserNotFound       = errors.New("auth: user not found")
)

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Service provides authentication operations: registration, password and
// OAuth login, token refresh and API keys.
type Service struct {
	userRepo   domain.UserRepository
	vault      *secrets.Vault // encrypts stored OAuth provider tokens; may be nil
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates a new auth service. vault may be nil; provider tokens
// are then not persisted.
func NewService(userRepo domain.UserRepository, vault *secrets.Vault, jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		userRepo:   userRepo,
		vault:      vault,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a new user with email/password. Returns the created user.
// The password is hashed with argon2id before storage.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("auth.Register: %w", ErrUserAlreadyExists)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return user, nil
}

// Login validates email/password and returns access + refresh JWT tokens.
func (s *Service) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !verifyPassword(password, user.PasswordHash) {
		return "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	return s.issuePair(user)
}

// LoginWithOAuth completes an OAuth2 code exchange and returns tokens for
// the linked user, creating the user and link on first login.
func (s *Service) LoginWithOAuth(ctx context.Context, provider *OAuthProvider, code string) (accessToken, refreshToken string, err error) {
	providerID, email, name, avatarURL, providerTokens, err := provider.ExchangeCode(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("auth.LoginWithOAuth: %w", err)
	}

	link, err := s.userRepo.GetOAuthLink(ctx, provider.Name, providerID)
	if err == nil {
		user, getErr := s.userRepo.GetByID(ctx, link.UserID)
		if getErr != nil {
			return "", "", fmt.Errorf("auth.LoginWithOAuth: %w", ErrUserNotFound)
		}
		return s.issuePair(user)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", "", fmt.Errorf("auth.LoginWithOAuth: %w", err)
	}

	// First OAuth login: attach to an existing account with the same email,
	// or create a fresh one.
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, domain.ErrNotFound) {
		now := time.Now()
		user = &domain.User{
			ID:        uuid.New(),
			Email:     strings.ToLower(email),
			Name:      name,
			AvatarURL: avatarURL,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if createErr := s.userRepo.Create(ctx, user); createErr != nil {
			return "", "", fmt.Errorf("auth.LoginWithOAuth: %w", createErr)
		}
	} else if err != nil {
		return "", "", fmt.Errorf("auth.LoginWithOAuth: %w", err)
	}

	newLink := &domain.UserOAuthLink{
		ID:         uuid.New(),
		UserID:     user.ID,
		Provider:   provider.Name,
		ProviderID: providerID,
		CreatedAt:  time.Now(),
	}
	if s.vault != nil {
		if newLink.AccessToken, err = s.vault.Encrypt(providerTokens.AccessToken); err != nil {
			return "", "", fmt.Errorf("auth.LoginWithOAuth: %w", err)
		}
		if newLink.RefreshToken, err = s.vault.Encrypt(providerTokens.RefreshToken); err != nil {
			return "", "", fmt.Errorf("auth.LoginWithOAuth: %w", err)
		}
	}
	if err := s.userRepo.CreateOAuthLink(ctx, newLink); err != nil {
		return "", "", fmt.Errorf("auth.LoginWithOAuth: %w", err)
	}

	return s.issuePair(user)
}

// RefreshToken validates a refresh token and issues a new access token.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ValidateToken(s.jwtSecret, refreshToken)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}

	if claims.TokenType != tokenTypeRefresh {
		return "", fmt.Errorf("auth.RefreshToken: %w", ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: invalid user id: %w", err)
	}

	// Verify the user still exists.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", ErrUserNotFound)
	}

	newAccess, err := IssueAccessToken(s.jwtSecret, user.ID, user.Email, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}

	return newAccess, nil
}

// GetUser returns a user by ID.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth.GetUser: %w", err)
	}

	return user, nil
}

func (s *Service) issuePair(user *domain.User) (accessToken, refreshToken string, err error) {
	accessToken, err = IssueAccessToken(s.jwtSecret, user.ID, user.Email, s.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth.issuePair: %w", err)
	}

	refreshToken, err = IssueRefreshToken(s.jwtSecret, user.ID, user.Email, s.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth.issuePair: %w", err)
	}

	return accessToken, refreshToken, nil
}

// hashPassword generates an argon2id hash with a random salt.
// Format: hex(salt) + "$" + hex(hash)
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// verifyPassword checks a password against an argon2id hash.
func verifyPassword(password, encoded string) bool {
	// Split salt$hash
	var saltHex, hashHex string
	for i := range len(encoded) {
		if encoded[i] == '$' {
			saltHex = encoded[:i]
			hashHex = encoded[i+1:]
			break
		}
	}

	if saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expectedHash, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	// Constant-time comparison to prevent timing attacks.
	if len(computed) != len(expectedHash) {
		return false
	}

	var diff byte
	for i := range computed {
		diff |= computed[i] ^ expectedHash[i]
	}

	return diff == 0
}
