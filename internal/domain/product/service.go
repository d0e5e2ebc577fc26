// internal/domain/product/service.go
package product

import (
	"context"
	"strconv"

	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

// Row is one product as the backend returns it. Rows stay raw here on
// purpose: live catalogs carry inconsistent field names, and the storefront
// owns the normalization into a canonical shape.
type Row map[string]any

// Service handles product catalog reads
type Service struct {
	sb *supabase.Client
}

// NewService creates a new product service
func NewService(sb *supabase.Client) *Service {
	return &Service{sb: sb}
}

// ListOptions are the recognized listing filters. Zero values are no-ops;
// set options compose conjunctively.
type ListOptions struct {
	Category  string  `form:"category"`
	MinPrice  float64 `form:"min_price"`
	MaxPrice  float64 `form:"max_price"`
	Search    string  `form:"search"`
	SortBy    string  `form:"sort_by"`
	SortOrder string  `form:"sort_order"`
	Page      int     `form:"page"`
	Limit     int     `form:"limit"`
}

// List retrieves active products with filtering, ordering and pagination
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Row, error) {
	query := s.sb.From("products").Select("*").Eq("active", "true")

	if opts.Category != "" {
		query = query.Eq("category", opts.Category)
	}

	if opts.MinPrice > 0 {
		query = query.Gte("price", formatNumber(opts.MinPrice))
	}

	if opts.MaxPrice > 0 {
		query = query.Lte("price", formatNumber(opts.MaxPrice))
	}

	if opts.Search != "" {
		query = query.Ilike("name", "%"+opts.Search+"%")
	}

	if opts.SortBy != "" {
		query = query.Order(opts.SortBy, opts.SortOrder == "asc")
	} else {
		query = query.Order("created_at", false)
	}

	// Window is [ (page-1)*limit, page*limit-1 ], zero-based inclusive,
	// and only applies when both page and limit are present
	if opts.Page > 0 && opts.Limit > 0 {
		from := (opts.Page - 1) * opts.Limit
		query = query.Range(from, from+opts.Limit-1)
	}

	var rows []Row
	if err := query.Get(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Get retrieves a single product with its reviews embedded
func (s *Service) Get(ctx context.Context, id string) (Row, error) {
	var row Row
	err := s.sb.From("products").
		Select("*,reviews(*)").
		Eq("id", id).
		Single().
		Get(ctx, &row)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListByCategory retrieves up to limit active products of one category.
// A non-positive limit falls back to 10.
func (s *Service) ListByCategory(ctx context.Context, category string, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []Row
	err := s.sb.From("products").
		Select("*").
		Eq("category", category).
		Eq("active", "true").
		Limit(limit).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
