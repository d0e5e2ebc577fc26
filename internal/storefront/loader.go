// internal/storefront/loader.go
package storefront

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lojamaq/storefront/internal/domain/product"
	redisinfra "github.com/lojamaq/storefront/internal/infrastructure/database/redis"
)

const snapshotKey = "catalog:snapshot"

// Catalog is the loaded, normalized product list. Fallback marks the
// loaded-with-fallback terminal state.
type Catalog struct {
	Products []Product `json:"products"`
	Fallback bool      `json:"fallback"`
}

// Loader implements the catalog retrieval step: fetch the unfiltered
// listing once, substitute the fallback catalog on error or empty result,
// normalize, and keep a short-lived snapshot so filter changes re-render
// without re-fetching.
type Loader struct {
	products *product.Service
	cache    *redisinfra.Client
	ttl      time.Duration
	log      *logrus.Logger
}

// NewLoader creates a catalog loader. The cache is optional; without one
// every Load fetches.
func NewLoader(products *product.Service, cache *redisinfra.Client, ttl time.Duration, log *logrus.Logger) *Loader {
	return &Loader{
		products: products,
		cache:    cache,
		ttl:      ttl,
		log:      log,
	}
}

// Load returns the current catalog. It never fails: a transport or backend
// error and an empty listing both land on the fallback catalog, so the
// caller always has something renderable.
func (l *Loader) Load(ctx context.Context) Catalog {
	if l.cache != nil {
		var cached Catalog
		if err := l.cache.GetJSON(ctx, snapshotKey, &cached); err == nil && len(cached.Products) > 0 {
			return cached
		}
	}

	catalog := l.fetch(ctx)

	// Fallback results are served but never snapshotted, so the next load
	// retries the backend
	if l.cache != nil && !catalog.Fallback {
		if err := l.cache.SetJSON(ctx, snapshotKey, catalog, l.ttl); err != nil {
			l.log.WithError(err).Warn("catalog snapshot write failed")
		}
	}

	return catalog
}

// Invalidate drops the snapshot so the next Load fetches fresh data
func (l *Loader) Invalidate(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Del(ctx, snapshotKey); err != nil {
		l.log.WithError(err).Warn("catalog snapshot invalidation failed")
	}
}

func (l *Loader) fetch(ctx context.Context) Catalog {
	rows, err := l.products.List(ctx, product.ListOptions{})
	if err != nil {
		l.log.WithError(err).Error("product listing failed, serving fallback catalog")
		return Catalog{Products: FallbackCatalog(), Fallback: true}
	}
	if len(rows) == 0 {
		return Catalog{Products: FallbackCatalog(), Fallback: true}
	}

	raw := make([]map[string]any, len(rows))
	for i, row := range rows {
		raw[i] = row
	}
	return Catalog{Products: NormalizeAll(raw)}
}
