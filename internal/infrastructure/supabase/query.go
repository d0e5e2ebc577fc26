// internal/infrastructure/supabase/query.go
package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Query builds a single PostgREST request against one table. Builder calls
// compose conjunctively; absent clauses are simply not sent.
type Query struct {
	client    *Client
	table     string
	params    url.Values
	token     string
	prefer    []string
	rangeFrom int
	rangeTo   int
	hasRange  bool
	single    bool
}

// From starts a query against the given table
func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		params: url.Values{},
	}
}

// Auth attaches a user token so the backend evaluates row-level security
// against that identity rather than the anonymous role
func (q *Query) Auth(token string) *Query {
	q.token = token
	return q
}

// Select sets the column projection, including embedded relations such as
// "*,reviews(*)"
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

// Eq adds an equality filter
func (q *Query) Eq(column, value string) *Query {
	q.params.Add(column, "eq."+value)
	return q
}

// Gte adds an inclusive lower-bound filter
func (q *Query) Gte(column, value string) *Query {
	q.params.Add(column, "gte."+value)
	return q
}

// Lte adds an inclusive upper-bound filter
func (q *Query) Lte(column, value string) *Query {
	q.params.Add(column, "lte."+value)
	return q
}

// Ilike adds a case-insensitive pattern filter ("%" wildcards)
func (q *Query) Ilike(column, pattern string) *Query {
	q.params.Add(column, "ilike."+pattern)
	return q
}

// Order appends an ordering clause
func (q *Query) Order(column string, ascending bool) *Query {
	direction := "desc"
	if ascending {
		direction = "asc"
	}
	clause := column + "." + direction
	if existing := q.params.Get("order"); existing != "" {
		clause = existing + "," + clause
	}
	q.params.Set("order", clause)
	return q
}

// Limit caps the number of returned rows
func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Range restricts the result to the zero-based inclusive window [from, to],
// sent as a Range header the same way the backend's official clients do
func (q *Query) Range(from, to int) *Query {
	q.rangeFrom = from
	q.rangeTo = to
	q.hasRange = true
	return q
}

// Single asks the backend for exactly one row, decoded as an object
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// Get executes the query and decodes rows into dest
func (q *Query) Get(ctx context.Context, dest any) error {
	return q.client.do(ctx, http.MethodGet, q.path(), q.params, q.headers(), q.token, nil, dest)
}

// Insert inserts rows. When dest is non-nil the created rows are returned
// and decoded into it.
func (q *Query) Insert(ctx context.Context, rows, dest any) error {
	if dest != nil {
		q.prefer = append(q.prefer, "return=representation")
	}
	return q.client.do(ctx, http.MethodPost, q.path(), q.params, q.headers(), q.token, rows, dest)
}

// Upsert inserts rows, merging with existing ones on the declared conflict
// target (e.g. "user_id,product_id")
func (q *Query) Upsert(ctx context.Context, rows any, onConflict string, dest any) error {
	if onConflict != "" {
		q.params.Set("on_conflict", onConflict)
	}
	q.prefer = append(q.prefer, "resolution=merge-duplicates")
	if dest != nil {
		q.prefer = append(q.prefer, "return=representation")
	}
	return q.client.do(ctx, http.MethodPost, q.path(), q.params, q.headers(), q.token, rows, dest)
}

// Update patches the rows matched by the query's filters
func (q *Query) Update(ctx context.Context, values, dest any) error {
	if dest != nil {
		q.prefer = append(q.prefer, "return=representation")
	}
	return q.client.do(ctx, http.MethodPatch, q.path(), q.params, q.headers(), q.token, values, dest)
}

// Delete removes the rows matched by the query's filters
func (q *Query) Delete(ctx context.Context) error {
	return q.client.do(ctx, http.MethodDelete, q.path(), q.params, q.headers(), q.token, nil, nil)
}

func (q *Query) path() string {
	return "/rest/v1/" + q.table
}

func (q *Query) headers() map[string]string {
	headers := map[string]string{}
	if q.hasRange {
		headers["Range-Unit"] = "items"
		headers["Range"] = fmt.Sprintf("%d-%d", q.rangeFrom, q.rangeTo)
	}
	if q.single {
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}
	if len(q.prefer) > 0 {
		headers["Prefer"] = strings.Join(q.prefer, ",")
	}
	return headers
}
