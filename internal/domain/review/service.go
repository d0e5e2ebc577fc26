// internal/domain/review/service.go
package review

import (
	"context"

	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

// Review is one product review, joined with the reviewer's profile name on
// read
type Review struct {
	ID        supabase.ID `json:"id,omitempty"`
	ProductID supabase.ID `json:"product_id"`
	UserID    string      `json:"user_id"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt string      `json:"created_at,omitempty"`
	Profile   *Reviewer   `json:"profiles,omitempty"`
}

// Reviewer is the joined profile projection
type Reviewer struct {
	FullName string `json:"full_name"`
}

// Service handles product reviews
type Service struct {
	sb *supabase.Client
}

// NewService creates a new review service
func NewService(sb *supabase.Client) *Service {
	return &Service{sb: sb}
}

// Create posts a review for a product and returns the created rows
func (s *Service) Create(ctx context.Context, token, productID string, rating int, comment string) ([]Review, error) {
	if token == "" {
		return nil, auth.ErrNotAuthenticated
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	rows := []Review{{
		ProductID: supabase.ID(productID),
		UserID:    user.ID,
		Rating:    rating,
		Comment:   comment,
	}}

	var created []Review
	err = s.sb.From("reviews").
		Auth(token).
		Insert(ctx, rows, &created)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListForProduct returns a product's reviews, newest first, with the
// reviewer's name embedded. Public: no token required.
func (s *Service) ListForProduct(ctx context.Context, productID string) ([]Review, error) {
	var reviews []Review
	err := s.sb.From("reviews").
		Select("*,profiles:user_id(full_name)").
		Eq("product_id", productID).
		Order("created_at", false).
		Get(ctx, &reviews)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}
