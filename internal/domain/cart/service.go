// internal/domain/cart/service.go
package cart

import (
	"context"

	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

// Item is one cart row, optionally with its product embedded
type Item struct {
	ID        supabase.ID    `json:"id,omitempty"`
	UserID    string         `json:"user_id"`
	ProductID supabase.ID    `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Product   map[string]any `json:"products,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
}

// Service handles the authenticated user's cart. Every mutation requires an
// owner and fails with auth.ErrNotAuthenticated before any remote call when
// none is present; Get instead degrades to an empty cart.
type Service struct {
	sb *supabase.Client
}

// NewService creates a new cart service
func NewService(sb *supabase.Client) *Service {
	return &Service{sb: sb}
}

// Add puts a product in the cart. A non-positive quantity defaults to 1.
// At most one row exists per (user, product): adds upsert on that pair.
func (s *Service) Add(ctx context.Context, token, productID string, quantity int) error {
	if token == "" {
		return auth.ErrNotAuthenticated
	}
	if quantity <= 0 {
		quantity = 1
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return err
	}

	rows := []Item{{
		UserID:    user.ID,
		ProductID: supabase.ID(productID),
		Quantity:  quantity,
	}}
	return s.sb.From("cart_items").
		Auth(token).
		Upsert(ctx, rows, "user_id,product_id", nil)
}

// Update sets the quantity of one cart row
func (s *Service) Update(ctx context.Context, token, productID string, quantity int) error {
	if token == "" {
		return auth.ErrNotAuthenticated
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return err
	}

	return s.sb.From("cart_items").
		Auth(token).
		Eq("user_id", user.ID).
		Eq("product_id", productID).
		Update(ctx, map[string]any{"quantity": quantity}, nil)
}

// Remove deletes one product from the cart
func (s *Service) Remove(ctx context.Context, token, productID string) error {
	if token == "" {
		return auth.ErrNotAuthenticated
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return err
	}

	return s.sb.From("cart_items").
		Auth(token).
		Eq("user_id", user.ID).
		Eq("product_id", productID).
		Delete(ctx)
}

// Get returns the user's cart with products embedded. Without a token it
// returns an empty cart and no error.
func (s *Service) Get(ctx context.Context, token string) ([]Item, error) {
	if token == "" {
		return []Item{}, nil
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	var items []Item
	err = s.sb.From("cart_items").
		Auth(token).
		Select("*,products:product_id(*)").
		Eq("user_id", user.ID).
		Get(ctx, &items)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Clear removes every row of the user's cart
func (s *Service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrNotAuthenticated
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return err
	}

	return s.sb.From("cart_items").
		Auth(token).
		Eq("user_id", user.ID).
		Delete(ctx)
}
