// Package testserver runs the full HTTP stack over an in-memory database for
// end-to-end tests.
package testserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/activation/internal/bootstrap"
	"github.com/rpggio/activation/internal/sqlite"
	"github.com/rpggio/activation/internal/transport"
	"github.com/stretchr/testify/require"
)

// Clock is a settable clock shared by every service of a TestServer.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	App      *bootstrap.Container
	Clock    *Clock
	Token    string
	TenantID string

	t *testing.T
}

// Options tunes New. The zero value is valid.
type Options struct {
	Start     time.Time
	RateLimit transport.RateLimitConfig
}

// New starts an authenticated server for tenantID and issues it a token.
func New(t *testing.T, tenantID string, opts Options) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	start := opts.Start
	if start.IsZero() {
		start = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	}
	clock := &Clock{t: start}

	app := bootstrap.Wire(db, bootstrap.Options{Clock: clock, LogNudges: true})
	server := httptest.NewServer(transport.NewServer(transport.Config{
		Services:  app.RESTServices(),
		Auth:      transport.AuthMiddleware(app.APIKeys),
		RateLimit: opts.RateLimit,
	}))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		App:      app,
		Clock:    clock,
		TenantID: tenantID,
		t:        t,
	}
	ts.Token = ts.IssueToken(tenantID)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// IssueToken creates an API key for tenantID.
func (ts *TestServer) IssueToken(tenantID string) string {
	ts.t.Helper()
	token, err := ts.App.APIKeys.Create(context.Background(), tenantID, "test")
	require.NoError(ts.t, err)
	return token
}

// Do sends an authenticated request and returns the status and body.
func (ts *TestServer) Do(method, path, body string) (int, []byte) {
	ts.t.Helper()
	return ts.DoAs(ts.Token, method, path, body)
}

// DoAs sends a request with token as the bearer credential.
func (ts *TestServer) DoAs(token, method, path, body string) (int, []byte) {
	ts.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(ts.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Server.Client().Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(ts.t, err)
	return resp.StatusCode, data
}

// DoJSON sends an authenticated request, requires wantStatus and decodes the
// body into out when out is non-nil.
func (ts *TestServer) DoJSON(method, path, body string, wantStatus int, out any) {
	ts.t.Helper()
	status, data := ts.Do(method, path, body)
	require.Equal(ts.t, wantStatus, status, "body: %s", data)
	if out != nil {
		require.NoError(ts.t, json.Unmarshal(data, out))
	}
}
