// internal/pkg/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lojamaq/storefront/internal/config"
	redisinfra "github.com/lojamaq/storefront/internal/infrastructure/database/redis"
)

// Data is what a browser session stores: the backend-issued token pair and
// a cached copy of who it belongs to
type Data struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

// Manager maps browser cookies to backend sessions kept in Redis. Token
// issuance and verification stay with the remote backend; the manager only
// stores the pair and peeks at the access token's expiry.
type Manager struct {
	store *redisinfra.Client
	cfg   *config.Config
}

// NewManager creates a session manager
func NewManager(store *redisinfra.Client, cfg *config.Config) *Manager {
	return &Manager{
		store: store,
		cfg:   cfg,
	}
}

// CookieName returns the configured session cookie name
func (m *Manager) CookieName() string {
	return m.cfg.Session.CookieName
}

// TTL returns the configured session lifetime
func (m *Manager) TTL() time.Duration {
	return m.cfg.Session.TTL
}

// Create stores a new session and returns its id
func (m *Manager) Create(ctx context.Context, data Data) (string, error) {
	id := uuid.NewString()
	if err := m.store.SetJSON(ctx, key(id), data, m.cfg.Session.TTL); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return id, nil
}

// Get loads a session. A missing or expired session yields nil, nil.
func (m *Manager) Get(ctx context.Context, id string) (*Data, error) {
	var data Data
	err := m.store.GetJSON(ctx, key(id), &data)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return &data, nil
}

// Update overwrites a session in place, keeping its id
func (m *Manager) Update(ctx context.Context, id string, data Data) error {
	return m.store.SetJSON(ctx, key(id), data, m.cfg.Session.TTL)
}

// Destroy removes a session
func (m *Manager) Destroy(ctx context.Context, id string) error {
	return m.store.Del(ctx, key(id))
}

// TokenExpired reports whether the access token is expired or about to be.
// The token is parsed without signature verification: it was minted by the
// backend and will be verified there on every request; only the exp claim
// matters locally.
func TokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < 30*time.Second
}

func key(id string) string {
	return "session:" + id
}
