package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/healthsurv/internal/client/endpoints"
	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/tokenstore"
	"github.com/dmitrijs2005/healthsurv/internal/logging"
	"github.com/google/uuid"
)

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client. Zero-valued dependencies get defaults:
// http.DefaultClient, an in-memory store, a no-op logger and
// endpoints.DefaultAuthPaths.
type Options struct {
	BaseURL string
	HTTP    Doer
	Store   tokenstore.Store
	Logger  logging.Logger
	Paths   endpoints.AuthPaths
}

type Client struct {
	baseURL string
	http    Doer
	store   tokenstore.Store
	log     logging.Logger
	paths   endpoints.AuthPaths

	mu    sync.Mutex
	creds models.Credentials
}

// New builds a Client and restores the credential pair kept in the store.
func New(ctx context.Context, opts Options) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTP,
		store:   opts.Store,
		log:     opts.Logger,
		paths:   opts.Paths.WithDefaults(),
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.store == nil {
		c.store = tokenstore.NewMemoryStore()
	}
	if c.log == nil {
		c.log = logging.Nop{}
	}

	creds, err := c.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored credentials: %w", err)
	}
	c.creds = creds

	return c, nil
}

// IsAuthenticated reports whether an access token is held. No I/O.
func (c *Client) IsAuthenticated() bool {
	return c.Credentials().Authenticated()
}

// Credentials returns a copy of the current pair.
func (c *Client) Credentials() models.Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds
}

// Login exchanges username and password for a new credential pair. No
// Authorization header is sent. On success the pair replaces any previous
// one, in memory and in the store. A non-2xx answer yields an
// *AuthenticationError and leaves the current pair untouched.
func (c *Client) Login(ctx context.Context, username, password string) (models.Credentials, error) {
	payload, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return models.Credentials{}, fmt.Errorf("encode login request: %w", err)
	}

	log := c.log.With("request_id", uuid.NewString(), "username", username)

	resp, err := c.roundTrip(ctx, http.MethodPost, c.paths.Login, payload, "", nil, log)
	if err != nil {
		return models.Credentials{}, err
	}
	if !resp.ok() {
		log.Info(ctx, "login rejected", "status", resp.status)
		return models.Credentials{}, &AuthenticationError{
			Status: resp.status,
			Body:   string(resp.body),
			Reason: "invalid credentials",
		}
	}

	var lr models.LoginResponse
	if err := json.Unmarshal(resp.body, &lr); err != nil {
		return models.Credentials{}, fmt.Errorf("decode login response: %w", err)
	}
	if lr.Access == "" {
		return models.Credentials{}, &AuthenticationError{
			Status: resp.status,
			Body:   string(resp.body),
			Reason: "login response carries no access token",
		}
	}

	creds := models.Credentials{AccessToken: lr.Access, RefreshToken: lr.Refresh}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Save(ctx, creds); err != nil {
		return models.Credentials{}, fmt.Errorf("persist credentials: %w", err)
	}
	c.creds = creds

	log.Info(ctx, "logged in")
	return creds, nil
}

// Logout drops both tokens from memory and from the store. It never fails
// and may be called any number of times; a store error is only logged.
func (c *Client) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked(ctx)
}

// Profile fetches the profile of the logged-in user.
func (c *Client) Profile(ctx context.Context) (*models.UserProfile, error) {
	p, err := Get[models.UserProfile](ctx, c, c.paths.Profile)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile patches the profile of the logged-in user.
func (c *Client) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	p, err := Patch[models.UserProfile](ctx, c, c.paths.Profile, upd)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// clearLocked empties the pair. c.mu must be held.
func (c *Client) clearLocked(ctx context.Context) {
	c.creds = models.Credentials{}
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear stored credentials", "error", err)
	}
}

// clearIfRefresh clears the pair unless it was replaced meanwhile, i.e. only
// while the held refresh token is still the one the failed attempt used.
func (c *Client) clearIfRefresh(ctx context.Context, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.creds.RefreshToken != refresh {
		c.log.Debug(ctx, "credentials replaced while request was in flight, not clearing")
		return
	}
	c.clearLocked(ctx)
}
