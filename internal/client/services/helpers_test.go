package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/session"
	"github.com/dmitrijs2005/healthsurv/internal/client/tokenstore"
	"github.com/stretchr/testify/require"
)

// ---- fake backend ----

type call struct {
	method string
	path   string
	auth   string
	body   string
}

// backend routes "METHOD /path" to a canned status and body.
type backend struct {
	mu     sync.Mutex
	routes map[string]route
	calls  []call
}

type route struct {
	status int
	body   string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.calls = append(b.calls, call{r.Method, r.URL.Path, r.Header.Get("Authorization"), string(body)})
	rt, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	_, _ = io.WriteString(w, rt.body)
}

func (b *backend) last() call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[len(b.calls)-1]
}

func newSession(t *testing.T, routes map[string]route, creds models.Credentials) (*session.Client, *backend) {
	t.Helper()
	b := &backend{routes: routes}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), creds))

	c, err := session.New(context.Background(), session.Options{BaseURL: srv.URL, HTTP: srv.Client(), Store: store})
	require.NoError(t, err)
	return c, b
}

var loggedIn = models.Credentials{AccessToken: "A", RefreshToken: "R"}
