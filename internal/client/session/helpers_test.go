package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/tokenstore"
	"github.com/stretchr/testify/require"
)

/*************
 * Scripted backend
 *************/

type step struct {
	path   string
	status int
	body   string
}

type recorded struct {
	method    string
	path      string
	auth      []string
	requestID string
	body      string
}

// stubBackend answers requests with steps in order and records what it got.
type stubBackend struct {
	t     *testing.T
	mu    sync.Mutex
	steps []step
	got   []recorded
}

func (s *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.got = append(s.got, recorded{
		method:    r.Method,
		path:      r.URL.Path,
		auth:      r.Header.Values("Authorization"),
		requestID: r.Header.Get("X-Request-ID"),
		body:      string(body),
	})
	i := len(s.got) - 1
	s.mu.Unlock()

	if i >= len(s.steps) {
		s.t.Errorf("unexpected request #%d %s %s", i+1, r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
		return
	}
	st := s.steps[i]
	if st.path != r.URL.Path {
		s.t.Errorf("request #%d: want path %s, got %s", i+1, st.path, r.URL.Path)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(st.status)
	_, _ = io.WriteString(w, st.body)
}

func (s *stubBackend) requests() []recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recorded(nil), s.got...)
}

func newStubClient(t *testing.T, store tokenstore.Store, steps ...step) (*Client, *stubBackend) {
	t.Helper()
	b := &stubBackend{t: t, steps: steps}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	if store == nil {
		store = tokenstore.NewMemoryStore()
	}
	c, err := New(context.Background(), Options{BaseURL: srv.URL + "/api/", HTTP: srv.Client(), Store: store})
	require.NoError(t, err)
	return c, b
}

func storeWith(t *testing.T, access, refresh string) *tokenstore.MemoryStore {
	t.Helper()
	s := tokenstore.NewMemoryStore()
	require.NoError(t, s.Save(context.Background(), models.Credentials{AccessToken: access, RefreshToken: refresh}))
	return s
}

func stored(t *testing.T, s tokenstore.Store) models.Credentials {
	t.Helper()
	c, err := s.Load(context.Background())
	require.NoError(t, err)
	return c
}

/*************
 * Fakes
 *************/

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// failingStore wraps MemoryStore and fails the configured operations.
type failingStore struct {
	*tokenstore.MemoryStore
	saveErr  error
	clearErr error
	loadErr  error
}

func (f *failingStore) Load(ctx context.Context) (models.Credentials, error) {
	if f.loadErr != nil {
		return models.Credentials{}, f.loadErr
	}
	return f.MemoryStore.Load(ctx)
}

func (f *failingStore) Save(ctx context.Context, c models.Credentials) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.Save(ctx, c)
}

func (f *failingStore) SaveAccess(ctx context.Context, access string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.SaveAccess(ctx, access)
}

func (f *failingStore) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.MemoryStore.Clear(ctx)
}

var errDisk = errors.New("disk full")
