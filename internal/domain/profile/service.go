// internal/domain/profile/service.go
package profile

import (
	"context"

	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

// Profile is the 1:1 companion row of an auth identity
type Profile struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Service handles the authenticated user's profile
type Service struct {
	sb *supabase.Client
}

// NewService creates a new profile service
func NewService(sb *supabase.Client) *Service {
	return &Service{sb: sb}
}

// Get returns the caller's profile. Without a token it returns nil and no
// error (read degradation).
func (s *Service) Get(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, nil
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	var p Profile
	err = s.sb.From("profiles").
		Auth(token).
		Select("*").
		Eq("id", user.ID).
		Single().
		Get(ctx, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update patches the caller's profile and returns the updated row. Fields
// arrive as a free-form map so partial updates send only what changed.
func (s *Service) Update(ctx context.Context, token string, fields map[string]any) (*Profile, error) {
	if token == "" {
		return nil, auth.ErrNotAuthenticated
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	var updated Profile
	err = s.sb.From("profiles").
		Auth(token).
		Eq("id", user.ID).
		Single().
		Update(ctx, fields, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
