package review_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojamaq/storefront/internal/config"
	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/domain/review"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

type captured struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

func newService(t *testing.T, reviews http.HandlerFunc) (*review.Service, *[]captured) {
	t.Helper()

	var requests []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, captured{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		switch r.URL.Path {
		case "/auth/v1/user":
			_, _ = w.Write([]byte(`{"id":"user-1","email":"a@b.com"}`))
		case "/rest/v1/reviews":
			reviews(w, r)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
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

	return review.NewService(supabase.New(cfg, log)), &requests
}

func TestCreateRequiresAuthentication(t *testing.T) {
	svc, requests := newService(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := svc.Create(context.Background(), "", "9", 5, "Ótimo")
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Empty(t, *requests)
}

func TestCreateInsertsReview(t *testing.T) {
	svc, requests := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":3,"product_id":9,"user_id":"user-1","rating":5,"comment":"Ótimo"}]`))
	})

	created, err := svc.Create(context.Background(), "tok-1", "9", 5, "Ótimo")
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, supabase.ID("3"), created[0].ID)

	insert := (*requests)[1]
	assert.Equal(t, http.MethodPost, insert.Method)
	assert.Contains(t, insert.Header.Get("Prefer"), "return=representation")

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(insert.Body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, float64(9), rows[0]["product_id"])
	assert.Equal(t, "user-1", rows[0]["user_id"])
	assert.Equal(t, float64(5), rows[0]["rating"])
	assert.Equal(t, "Ótimo", rows[0]["comment"])
}

func TestListForProductIsPublic(t *testing.T) {
	svc, requests := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":3,"product_id":9,"rating":5,"comment":"Ótimo",
			"profiles":{"full_name":"João da Silva"}}]`))
	})

	reviews, err := svc.ListForProduct(context.Background(), "9")
	require.NoError(t, err)

	listing := (*requests)[0]
	assert.Equal(t, "*,profiles:user_id(full_name)", listing.Query.Get("select"))
	assert.Equal(t, []string{"eq.9"}, listing.Query["product_id"])
	assert.Equal(t, "created_at.desc", listing.Query.Get("order"))
	assert.Equal(t, "Bearer anon-key", listing.Header.Get("Authorization"))

	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Profile)
	assert.Equal(t, "João da Silva", reviews[0].Profile.FullName)
}

func TestListForProductEmptyIsNotAnError(t *testing.T) {
	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	reviews, err := svc.ListForProduct(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, []review.Review{}, reviews)
}
