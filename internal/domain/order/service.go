// internal/domain/order/service.go
package order

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/domain/cart"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

// Order lifecycle statuses. Creation always starts at pending/pending.
const (
	StatusPending        = "pending"
	PaymentStatusPending = "pending"
)

// Order is one order row
type Order struct {
	ID              supabase.ID     `json:"id"`
	UserID          string          `json:"user_id"`
	Status          string          `json:"status"`
	Total           float64         `json:"total"`
	Items           json.RawMessage `json:"items"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	CreatedAt       string          `json:"created_at"`
}

// CreateRequest is the order creation payload. Items is the cart snapshot
// taken by the caller; it is stored verbatim.
type CreateRequest struct {
	Total           float64         `json:"total" binding:"required"`
	Items           json.RawMessage `json:"items" binding:"required"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
}

// Service handles order creation and retrieval
type Service struct {
	sb      *supabase.Client
	cartSvc *cart.Service
	log     *logrus.Logger
}

// NewService creates a new order service
func NewService(sb *supabase.Client, cartSvc *cart.Service, log *logrus.Logger) *Service {
	return &Service{
		sb:      sb,
		cartSvc: cartSvc,
		log:     log,
	}
}

// Create persists a new order with both statuses initialized to pending and
// then clears the cart as a best-effort follow-up. The clear is not atomic
// with the insert: when it fails the order stays persisted, the cart stays
// full, and only a warning is logged.
func (s *Service) Create(ctx context.Context, token string, req *CreateRequest) (*Order, error) {
	if token == "" {
		return nil, auth.ErrNotAuthenticated
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	rows := []map[string]any{{
		"user_id":          user.ID,
		"status":           StatusPending,
		"total":            req.Total,
		"items":            req.Items,
		"shipping_address": req.ShippingAddress,
		"payment_method":   req.PaymentMethod,
		"payment_status":   PaymentStatusPending,
	}}

	var created Order
	err = s.sb.From("orders").
		Auth(token).
		Single().
		Insert(ctx, rows, &created)
	if err != nil {
		return nil, err
	}

	if err := s.cartSvc.Clear(ctx, token); err != nil {
		s.log.WithError(err).WithField("order_id", created.ID.String()).
			Warn("cart clear after order creation failed")
	}

	return &created, nil
}

// ListForUser returns the user's orders, newest first. Without a token it
// returns an empty list and no error.
func (s *Service) ListForUser(ctx context.Context, token string) ([]Order, error) {
	if token == "" {
		return []Order{}, nil
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	var orders []Order
	err = s.sb.From("orders").
		Auth(token).
		Select("*").
		Eq("user_id", user.ID).
		Order("created_at", false).
		Get(ctx, &orders)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// Get returns one order, scoped to the authenticated owner
func (s *Service) Get(ctx context.Context, token, orderID string) (*Order, error) {
	if token == "" {
		return nil, auth.ErrNotAuthenticated
	}

	user, err := s.sb.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	var found Order
	err = s.sb.From("orders").
		Auth(token).
		Select("*").
		Eq("id", orderID).
		Eq("user_id", user.ID).
		Single().
		Get(ctx, &found)
	if err != nil {
		return nil, err
	}
	return &found, nil
}
