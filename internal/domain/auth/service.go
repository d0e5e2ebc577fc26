// internal/domain/auth/service.go
package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

// ErrNotAuthenticated is returned by owner-requiring operations before any
// remote call is issued when no authenticated user is present
var ErrNotAuthenticated = errors.New("usuário não autenticado")

// Service handles authentication against the remote backend
type Service struct {
	sb  *supabase.Client
	log *logrus.Logger
}

// NewService creates a new auth service
func NewService(sb *supabase.Client, log *logrus.Logger) *Service {
	return &Service{
		sb:  sb,
		log: log,
	}
}

type profileRow struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// SignUp registers a new user. On success a matching profiles row is created
// as a best-effort follow-up; its failure is logged, never propagated, so a
// window exists where the identity is persisted without its profile.
func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (*supabase.Session, error) {
	session, err := s.sb.SignUp(ctx, email, password, map[string]any{
		"full_name": fullName,
	})
	if err != nil {
		return nil, err
	}

	if session.User.ID != "" {
		rows := []profileRow{{ID: session.User.ID, FullName: fullName}}
		if err := s.sb.From("profiles").Auth(session.AccessToken).Insert(ctx, rows, nil); err != nil {
			s.log.WithError(err).WithField("user_id", session.User.ID).
				Warn("profile creation after sign-up failed")
		}
	}

	return session, nil
}

// SignIn exchanges credentials for a session
func (s *Service) SignIn(ctx context.Context, email, password string) (*supabase.Session, error) {
	return s.sb.SignInWithPassword(ctx, email, password)
}

// SignOut revokes the session behind the token
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	return s.sb.SignOut(ctx, token)
}

// CurrentUser resolves the authenticated caller for a token. An empty token
// yields a nil user with no error (read degradation).
func (s *Service) CurrentUser(ctx context.Context, token string) (*supabase.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.sb.GetUser(ctx, token)
}

// Refresh exchanges a refresh token for a new session
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*supabase.Session, error) {
	return s.sb.RefreshSession(ctx, refreshToken)
}

// ResetPassword asks the backend to send a recovery email
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	return s.sb.Recover(ctx, email)
}
