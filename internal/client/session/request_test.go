package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_NoAuthorizationWhenUnauthenticated(t *testing.T) {
	c, b := newStubClient(t, nil,
		step{path: "/api/auth/roles/", status: http.StatusOK, body: `[]`},
	)

	_, err := Get[[]models.Role](context.Background(), c, "/auth/roles/")
	require.NoError(t, err)
	assert.Empty(t, b.requests()[0].auth)
}

func TestDo_CallerCannotOverrideAuthorization(t *testing.T) {
	c, b := newStubClient(t, storeWith(t, "A", "R"),
		step{path: "/api/x", status: http.StatusOK, body: `{}`},
	)

	_, err := Get[map[string]any](context.Background(), c, "/x",
		WithHeader("Authorization", "Bearer forged"),
		WithHeader("X-Client", "cli"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer A"}, b.requests()[0].auth)
}

func TestDo_RefreshThenRetrySucceeds(t *testing.T) {
	store := storeWith(t, "A", "R")
	c, b := newStubClient(t, store,
		step{path: "/api/x", status: http.StatusUnauthorized, body: `{"detail":"token expired"}`},
		step{path: "/api/auth/refresh/", status: http.StatusOK, body: `{"access":"A2"}`},
		step{path: "/api/x", status: http.StatusOK, body: `{"ok":true}`},
	)

	got, err := Get[map[string]any](context.Background(), c, "/x")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, got)

	// refresh token is not rotated
	want := models.Credentials{AccessToken: "A2", RefreshToken: "R"}
	assert.Equal(t, want, c.Credentials())
	assert.Equal(t, want, stored(t, store))

	reqs := b.requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, []string{"Bearer A"}, reqs[0].auth)
	assert.Empty(t, reqs[1].auth, "refresh must not carry Authorization")
	assert.Equal(t, http.MethodPost, reqs[1].method)
	assert.JSONEq(t, `{"refresh":"R"}`, reqs[1].body)
	assert.Equal(t, []string{"Bearer A2"}, reqs[2].auth)
	assert.Equal(t, reqs[0].requestID, reqs[2].requestID, "retry belongs to the same logical request")
	assert.NotEmpty(t, reqs[0].requestID)
}

func TestDo_RetryResendsBody(t *testing.T) {
	c, b := newStubClient(t, storeWith(t, "A", "R"),
		step{path: "/api/asha/reports/", status: http.StatusUnauthorized, body: `{}`},
		step{path: "/api/auth/refresh/", status: http.StatusOK, body: `{"access":"A2"}`},
		step{path: "/api/asha/reports/", status: http.StatusCreated, body: `{"id":9}`},
	)

	got, err := Post[map[string]int](context.Background(), c, "/asha/reports/", map[string]string{"village": "Kolleru"})
	require.NoError(t, err)
	assert.Equal(t, 9, got["id"])

	reqs := b.requests()
	assert.JSONEq(t, `{"village":"Kolleru"}`, reqs[0].body)
	assert.JSONEq(t, `{"village":"Kolleru"}`, reqs[2].body)
}

func TestDo_RefreshRejectedClearsSession(t *testing.T) {
	store := storeWith(t, "A", "R")
	c, b := newStubClient(t, store,
		step{path: "/api/x", status: http.StatusUnauthorized, body: `{}`},
		step{path: "/api/auth/refresh/", status: http.StatusUnauthorized, body: `{"detail":"Token is invalid or expired"}`},
	)

	_, err := Get[map[string]any](context.Background(), c, "/x")

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, ErrUnauthorized)
	var refreshErr *RefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.Equal(t, http.StatusUnauthorized, refreshErr.Status)
	assert.Contains(t, err.Error(), "please login again")

	assert.False(t, c.IsAuthenticated())
	assert.True(t, c.Credentials().IsZero())
	assert.Empty(t, store.Keys())
	assert.Len(t, b.requests(), 2)
}

func TestDo_RefreshWithoutAccessTokenClearsSession(t *testing.T) {
	store := storeWith(t, "A", "R")
	c, _ := newStubClient(t, store,
		step{path: "/api/x", status: http.StatusUnauthorized, body: `{}`},
		step{path: "/api/auth/refresh/", status: http.StatusOK, body: `{}`},
	)

	_, err := Get[map[string]any](context.Background(), c, "/x")
	var refreshErr *RefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, store.Keys())
}

func TestDo_UnauthorizedWithoutRefreshTokenClearsSession(t *testing.T) {
	store := storeWith(t, "A", "")
	c, b := newStubClient(t, store,
		step{path: "/api/x", status: http.StatusUnauthorized, body: `{}`},
	)

	_, err := Get[map[string]any](context.Background(), c, "/x")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, store.Keys())
	assert.Len(t, b.requests(), 1, "no refresh without a refresh token")
}

func TestDo_RetryIsAttemptedOnlyOnce(t *testing.T) {
	store := storeWith(t, "A", "R")
	c, b := newStubClient(t, store,
		step{path: "/api/x", status: http.StatusUnauthorized, body: `{}`},
		step{path: "/api/auth/refresh/", status: http.StatusOK, body: `{"access":"A2"}`},
		step{path: "/api/x", status: http.StatusUnauthorized, body: `{"detail":"still no"}`},
	)

	_, err := Get[map[string]any](context.Background(), c, "/x")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.NotErrorIs(t, err, ErrUnauthorized)

	reqs := b.requests()
	require.Len(t, reqs, 3, "one send, one refresh, one resend")

	// the retry's failure is surfaced; tokens stay as refreshed
	want := models.Credentials{AccessToken: "A2", RefreshToken: "R"}
	assert.Equal(t, want, c.Credentials())
	assert.Equal(t, want, stored(t, store))
}

func TestDo_RetryServerErrorSurfaced(t *testing.T) {
	c, _ := newStubClient(t, storeWith(t, "A", "R"),
		step{path: "/api/x", status: http.StatusUnauthorized, body: `{}`},
		step{path: "/api/auth/refresh/", status: http.StatusOK, body: `{"access":"A2"}`},
		step{path: "/api/x", status: http.StatusInternalServerError, body: `boom`},
	)

	_, err := Get[map[string]any](context.Background(), c, "/x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "A2", c.Credentials().AccessToken)
}

func TestDo_NotFoundLeavesTokens(t *testing.T) {
	store := storeWith(t, "A", "R")
	c, b := newStubClient(t, store,
		step{path: "/api/x", status: http.StatusNotFound, body: `{"detail":"Not found."}`},
	)

	_, err := Get[map[string]any](context.Background(), c, "/x")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, `{"detail":"Not found."}`, apiErr.Body)
	assert.Equal(t, `api error: 404 - {"detail":"Not found."}`, err.Error())

	want := models.Credentials{AccessToken: "A", RefreshToken: "R"}
	assert.Equal(t, want, c.Credentials())
	assert.Equal(t, want, stored(t, store))
	assert.Len(t, b.requests(), 1)
}

func TestDo_TransportErrorLeavesTokens(t *testing.T) {
	store := storeWith(t, "A", "R")
	netErr := errors.New("dial tcp: connection refused")
	c, err := New(context.Background(), Options{
		BaseURL: "http://backend/api",
		Store:   store,
		HTTP: doerFunc(func(*http.Request) (*http.Response, error) {
			return nil, netErr
		}),
	})
	require.NoError(t, err)

	_, err = Get[map[string]any](context.Background(), c, "/x")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, netErr)
	assert.Equal(t, http.MethodGet, te.Method)
	assert.Equal(t, "http://backend/api/x", te.URL)
	assert.Equal(t, models.Credentials{AccessToken: "A", RefreshToken: "R"}, stored(t, store))
	assert.True(t, c.IsAuthenticated())
}

func TestDo_RefreshTransportErrorLeavesTokens(t *testing.T) {
	store := storeWith(t, "A", "R")
	var calls int
	c, err := New(context.Background(), Options{
		BaseURL: "http://backend/api",
		Store:   store,
		HTTP: doerFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return jsonResponse(http.StatusUnauthorized, `{}`), nil
			}
			return nil, errors.New("network unreachable")
		}),
	})
	require.NoError(t, err)

	_, err = Get[map[string]any](context.Background(), c, "/x")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "http://backend/api/auth/refresh/", te.URL)
	assert.Equal(t, 2, calls)
	assert.Equal(t, models.Credentials{AccessToken: "A", RefreshToken: "R"}, c.Credentials())
}

func TestDo_CanceledContextIsTransportError(t *testing.T) {
	c, _ := newStubClient(t, storeWith(t, "A", "R"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get[map[string]any](ctx, c, "/x")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, c.IsAuthenticated())
}

func TestDo_EmptyBodyLeavesZeroValue(t *testing.T) {
	c, _ := newStubClient(t, storeWith(t, "A", "R"),
		step{path: "/api/state/advisories/3/", status: http.StatusNoContent},
	)

	got, err := Delete[map[string]any](context.Background(), c, "/state/advisories/3/")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDo_MalformedSuccessBody(t *testing.T) {
	c, _ := newStubClient(t, storeWith(t, "A", "R"),
		step{path: "/api/x", status: http.StatusOK, body: `not json`},
	)

	_, err := Get[map[string]any](context.Background(), c, "/x")
	require.ErrorContains(t, err, "decode GET /x response")
}

func TestDo_PutAndPatchMethods(t *testing.T) {
	c, b := newStubClient(t, storeWith(t, "A", "R"),
		step{path: "/api/state/advisories/1/", status: http.StatusOK, body: `{"id":1}`},
		step{path: "/api/state/advisories/1/", status: http.StatusOK, body: `{"id":1}`},
	)
	ctx := context.Background()

	_, err := Put[map[string]int](ctx, c, "state/advisories/1/", map[string]string{"title": "boil water"})
	require.NoError(t, err)
	_, err = Patch[map[string]int](ctx, c, "/state/advisories/1/", map[string]bool{"active": false})
	require.NoError(t, err)

	reqs := b.requests()
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, http.MethodPatch, reqs[1].method)
}

func TestDo_AbsoluteURLIsUsedAsIs(t *testing.T) {
	other := &stubBackend{t: t, steps: []step{{path: "/elsewhere", status: http.StatusOK, body: `{}`}}}
	srv := httptest.NewServer(other)
	defer srv.Close()

	c, _ := newStubClient(t, storeWith(t, "A", "R"))
	_, err := Get[map[string]any](context.Background(), c, srv.URL+"/elsewhere")
	require.NoError(t, err)
	assert.Len(t, other.requests(), 1)
}

func TestDo_UnencodableBody(t *testing.T) {
	c, b := newStubClient(t, storeWith(t, "A", "R"))

	_, err := Post[map[string]any](context.Background(), c, "/x", make(chan int))
	require.ErrorContains(t, err, "encode POST /x body")
	assert.Empty(t, b.requests())
}

// A logout that lands while a refresh is in flight wins: the refreshed access
// token is used for the pending retry but not stored.
func TestDo_LogoutDuringRefreshIsNotUndone(t *testing.T) {
	store := storeWith(t, "A", "R")
	var c *Client
	var n int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&n, 1) {
		case 1:
			w.WriteHeader(http.StatusUnauthorized)
		case 2:
			c.Logout(context.Background())
			_, _ = w.Write([]byte(`{"access":"A2"}`))
		default:
			assert.Equal(t, "Bearer A2", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	var err error
	c, err = New(context.Background(), Options{BaseURL: srv.URL, HTTP: srv.Client(), Store: store})
	require.NoError(t, err)

	_, err = Get[map[string]any](context.Background(), c, "/x")
	require.NoError(t, err)

	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, store.Keys())
}

// Two requests that both get 401 each run their own refresh; whichever
// refresh finishes last decides the stored access token. This race is
// accepted behaviour, not deduplicated.
func TestDo_ConcurrentUnauthorizedRefreshIndependently(t *testing.T) {
	store := storeWith(t, "A", "R")

	var refreshes int32
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/refresh/":
			n := atomic.AddInt32(&refreshes, 1)
			_, _ = w.Write([]byte(`{"access":"A-` + strconv.Itoa(int(n)) + `"}`))
		case r.Header.Get("Authorization") == "Bearer A":
			arrived <- struct{}{}
			<-release
			w.WriteHeader(http.StatusUnauthorized)
		default:
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	c, err := New(context.Background(), Options{BaseURL: srv.URL, HTTP: srv.Client(), Store: store})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = Get[map[string]any](context.Background(), c, "/x")
		}(i)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-arrived:
		case <-time.After(5 * time.Second):
			t.Fatal("requests did not reach the backend")
		}
	}
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.EqualValues(t, 2, atomic.LoadInt32(&refreshes))

	final := c.Credentials()
	assert.Contains(t, []string{"A-1", "A-2"}, final.AccessToken)
	assert.Equal(t, "R", final.RefreshToken)
	assert.Equal(t, final, stored(t, store))
}

func TestDo_ConcurrentUseKeepsPairConsistent(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			_, _ = w.Write([]byte(`{"access":"A","refresh":"R"}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	c, err := New(context.Background(), Options{BaseURL: srv.URL, HTTP: srv.Client(), Store: store})
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				_, _ = c.Login(ctx, "u", "p")
			case 1:
				c.Logout(ctx)
			default:
				_, _ = Get[map[string]any](ctx, c, "/x")
			}
			creds := c.Credentials()
			// both present or both absent
			assert.Equal(t, creds.AccessToken == "", creds.RefreshToken == "")
		}(i)
	}
	wg.Wait()

	final := c.Credentials()
	assert.Equal(t, final, stored(t, store))
}
