package supabase_test

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
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

type captured struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*supabase.Client, *[]captured) {
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
		handler(w, r)
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

	return supabase.New(cfg, log), &requests
}

func respondJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestGetBuildsPostgrestQuery(t *testing.T) {
	client, requests := newTestClient(t, respondJSON("[]"))

	var rows []map[string]any
	err := client.From("products").
		Select("*").
		Eq("active", "true").
		Gte("price", "100").
		Lte("price", "500").
		Ilike("name", "%emp%").
		Order("created_at", false).
		Get(context.Background(), &rows)
	require.NoError(t, err)
	require.Len(t, *requests, 1)

	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/v1/products", req.Path)
	assert.Equal(t, "*", req.Query.Get("select"))
	assert.Equal(t, []string{"eq.true"}, req.Query["active"])
	assert.Equal(t, []string{"gte.100", "lte.500"}, req.Query["price"])
	assert.Equal(t, []string{"ilike.%emp%"}, req.Query["name"])
	assert.Equal(t, "created_at.desc", req.Query.Get("order"))
	assert.Equal(t, "anon-key", req.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", req.Header.Get("Authorization"))
}

func TestAuthTokenOverridesBearer(t *testing.T) {
	client, requests := newTestClient(t, respondJSON("[]"))

	var rows []map[string]any
	err := client.From("cart_items").Auth("user-token").Select("*").Get(context.Background(), &rows)
	require.NoError(t, err)

	req := (*requests)[0]
	assert.Equal(t, "Bearer user-token", req.Header.Get("Authorization"))
	assert.Equal(t, "anon-key", req.Header.Get("apikey"))
}

func TestRangeSendsWindowHeader(t *testing.T) {
	client, requests := newTestClient(t, respondJSON("[]"))

	var rows []map[string]any
	err := client.From("products").Select("*").Range(10, 19).Get(context.Background(), &rows)
	require.NoError(t, err)

	req := (*requests)[0]
	assert.Equal(t, "10-19", req.Header.Get("Range"))
	assert.Equal(t, "items", req.Header.Get("Range-Unit"))
}

func TestSingleRequestsObjectRepresentation(t *testing.T) {
	client, requests := newTestClient(t, respondJSON(`{"id":1}`))

	var row map[string]any
	err := client.From("products").Select("*").Eq("id", "1").Single().Get(context.Background(), &row)
	require.NoError(t, err)

	req := (*requests)[0]
	assert.Equal(t, "application/vnd.pgrst.object+json", req.Header.Get("Accept"))
}

func TestUpsertSetsConflictTargetAndPrefer(t *testing.T) {
	client, requests := newTestClient(t, respondJSON("[]"))

	rows := []map[string]any{{"user_id": "u1", "product_id": 5, "quantity": 1}}
	err := client.From("cart_items").Upsert(context.Background(), rows, "user_id,product_id", nil)
	require.NoError(t, err)

	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "user_id,product_id", req.Query.Get("on_conflict"))
	assert.Contains(t, req.Header.Get("Prefer"), "resolution=merge-duplicates")
}

func TestInsertWithDestAsksForRepresentation(t *testing.T) {
	client, requests := newTestClient(t, respondJSON(`[{"id":7}]`))

	var created []map[string]any
	err := client.From("orders").Insert(context.Background(), []map[string]any{{"total": 10}}, &created)
	require.NoError(t, err)

	req := (*requests)[0]
	assert.Contains(t, req.Header.Get("Prefer"), "return=representation")
	require.Len(t, created, 1)
	assert.Equal(t, float64(7), created[0]["id"])
}

func TestBackendErrorIsTyped(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"Invalid token"}`))
	})

	var rows []map[string]any
	err := client.From("products").Select("*").Get(context.Background(), &rows)
	require.Error(t, err)

	var backendErr *supabase.Error
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusUnauthorized, backendErr.Status)
	assert.Equal(t, "Invalid token", backendErr.Message)
}

func TestSignInParsesSession(t *testing.T) {
	client, requests := newTestClient(t, respondJSON(`{
		"access_token":"at-1","refresh_token":"rt-1","expires_in":3600,
		"user":{"id":"user-1","email":"a@b.com"}
	}`))

	sess, err := client.SignInWithPassword(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	req := (*requests)[0]
	assert.Equal(t, "/auth/v1/token", req.Path)
	assert.Equal(t, "password", req.Query.Get("grant_type"))
	assert.Equal(t, "at-1", sess.AccessToken)
	assert.Equal(t, "user-1", sess.User.ID)
}

func TestSignUpHandlesConfirmationOnlyResponse(t *testing.T) {
	// Email-confirmation projects answer with a bare user, no token
	client, _ := newTestClient(t, respondJSON(`{"id":"user-2","email":"c@d.com"}`))

	sess, err := client.SignUp(context.Background(), "c@d.com", "secret", nil)
	require.NoError(t, err)
	assert.Empty(t, sess.AccessToken)
	assert.Equal(t, "user-2", sess.User.ID)
}

func TestIDAcceptsNumericAndStringKeys(t *testing.T) {
	var numeric, uuid supabase.ID
	require.NoError(t, json.Unmarshal([]byte(`42`), &numeric))
	require.NoError(t, json.Unmarshal([]byte(`"ab-12"`), &uuid))
	assert.Equal(t, "42", numeric.String())
	assert.Equal(t, "ab-12", uuid.String())

	encoded, err := json.Marshal(numeric)
	require.NoError(t, err)
	assert.Equal(t, "42", string(encoded))

	encoded, err = json.Marshal(uuid)
	require.NoError(t, err)
	assert.Equal(t, `"ab-12"`, string(encoded))
}
