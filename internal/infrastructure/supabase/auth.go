// internal/infrastructure/supabase/auth.go
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Session represents an authenticated session issued by the backend
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// User represents the authenticated identity as reported by the backend
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	CreatedAt    string         `json:"created_at"`
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrant struct {
	RefreshToken string `json:"refresh_token"`
}

type emailPayload struct {
	Email string `json:"email"`
}

// SignUp registers a new identity. Metadata travels as user metadata on the
// auth record (the profile row is the facade's responsibility, not ours).
// When the project requires email confirmation the backend answers with a
// bare user object instead of a session; both shapes are handled.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*Session, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodPost, "/auth/v1/signup", nil, nil, "", signUpRequest{
		Email:    email,
		Password: password,
		Data:     metadata,
	}, &raw)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decoding sign-up response: %w", err)
	}
	if session.User.ID == "" {
		if err := json.Unmarshal(raw, &session.User); err != nil {
			return nil, fmt.Errorf("decoding sign-up response: %w", err)
		}
	}
	return &session, nil
}

// SignInWithPassword exchanges credentials for a session
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	query := url.Values{"grant_type": {"password"}}
	var session Session
	err := c.do(ctx, http.MethodPost, "/auth/v1/token", query, nil, "", passwordGrant{
		Email:    email,
		Password: password,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// RefreshSession exchanges a refresh token for a fresh session
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	query := url.Values{"grant_type": {"refresh_token"}}
	var session Session
	err := c.do(ctx, http.MethodPost, "/auth/v1/token", query, nil, "", refreshGrant{
		RefreshToken: refreshToken,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut revokes the token's session on the backend
func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, token, nil, nil)
}

// GetUser answers "who is the authenticated caller" for a token
func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, nil, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Recover asks the backend to send a password recovery email
func (c *Client) Recover(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/recover", nil, nil, "", emailPayload{Email: email}, nil)
}
