package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojamaq/storefront/internal/config"
	"github.com/lojamaq/storefront/internal/domain/product"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
	"github.com/lojamaq/storefront/internal/interfaces/http/handlers"
	"github.com/lojamaq/storefront/internal/storefront"
)

func newRouter(t *testing.T, backend http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App: config.AppConfig{Name: "LojaMaq"},
		Supabase: config.SupabaseConfig{
			URL:     srv.URL,
			AnonKey: "anon-key",
			Timeout: 5 * time.Second,
		},
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	products := product.NewService(supabase.New(cfg, log))
	loader := storefront.NewLoader(products, nil, time.Minute, log)
	handler := handlers.NewStorefrontHandler(loader, cfg, log)

	router := gin.New()
	router.GET("/", handler.Index)
	router.GET("/catalogo/grid", handler.Grid)
	return router
}

func liveCatalog(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(`[
		{"id":1,"nome":"Serra Circular","categoria":"Ferramentas","preco":450},
		{"id":2,"nome":"Empilhadeira Manual","categoria":"Equipamentos-e-tecnologia","preco":1890}
	]`))
}

func brokenBackend(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"message":"boom"}`))
}

func TestIndexRendersLiveCatalog(t *testing.T) {
	router := newRouter(t, liveCatalog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Serra Circular")
	assert.Contains(t, w.Body.String(), "Empilhadeira Manual")
	assert.NotContains(t, w.Body.String(), "aviso-offline")
}

func TestIndexStaysUpWhenBackendIsDown(t *testing.T) {
	router := newRouter(t, brokenBackend)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Empilhadeira Elétrica 2,5t")
	assert.Contains(t, w.Body.String(), "aviso-offline")
}

func TestIndexAppliesQueryFilters(t *testing.T) {
	router := newRouter(t, liveCatalog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?busca=serra&categoria=Ferramentas", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Serra Circular")
	assert.NotContains(t, w.Body.String(), "Empilhadeira Manual")
}

func TestIndexEmptyStateMessage(t *testing.T) {
	router := newRouter(t, liveCatalog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?busca=xyz-nomatch", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nenhum produto encontrado.")
}

func TestGridRendersOnlyTheFragment(t *testing.T) {
	router := newRouter(t, liveCatalog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalogo/grid?categoria=Ferramentas", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cartao-produto")
	assert.Contains(t, w.Body.String(), "Serra Circular")
	assert.NotContains(t, w.Body.String(), "<html")
}
