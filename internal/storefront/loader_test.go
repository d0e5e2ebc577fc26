package storefront_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojamaq/storefront/internal/config"
	"github.com/lojamaq/storefront/internal/domain/product"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
	"github.com/lojamaq/storefront/internal/storefront"
)

func newLoader(t *testing.T, handler http.HandlerFunc) *storefront.Loader {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Supabase: config.SupabaseConfig{
			URL:     srv.URL,
			AnonKey: "anon-key",
			Timeout: 5 * time.Second,
		},
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	products := product.NewService(supabase.New(cfg, log))
	return storefront.NewLoader(products, nil, time.Minute, log)
}

func TestLoadNormalizesLiveRows(t *testing.T) {
	loader := newLoader(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"nome":"Parafusadeira","preco":299,"categoria":"Ferramentas"}]`))
	})

	catalog := loader.Load(context.Background())

	assert.False(t, catalog.Fallback)
	require.Len(t, catalog.Products, 1)
	assert.Equal(t, "Parafusadeira", catalog.Products[0].Name)
	assert.Equal(t, float64(299), catalog.Products[0].Price)
	assert.Equal(t, "Ferramentas", catalog.Products[0].Category)
}

func TestLoadServesFallbackOnBackendError(t *testing.T) {
	loader := newLoader(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})

	catalog := loader.Load(context.Background())

	assert.True(t, catalog.Fallback)
	require.Len(t, catalog.Products, 1)
	assert.Equal(t, "Empilhadeira Elétrica 2,5t", catalog.Products[0].Name)
}

func TestLoadServesFallbackOnEmptyListing(t *testing.T) {
	loader := newLoader(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	catalog := loader.Load(context.Background())

	assert.True(t, catalog.Fallback)
	require.Len(t, catalog.Products, 1)
}
