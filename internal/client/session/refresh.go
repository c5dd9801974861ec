package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/logging"
)

// refresh trades the refresh token for a new access token and returns it.
// The refresh token itself is kept. A rejected refresh clears the pair and
// returns a *RefreshError; a transport failure leaves the pair alone.
func (c *Client) refresh(ctx context.Context, refresh string, log logging.Logger) (string, error) {
	payload, err := json.Marshal(models.RefreshRequest{Refresh: refresh})
	if err != nil {
		return "", fmt.Errorf("encode refresh request: %w", err)
	}

	resp, err := c.roundTrip(ctx, http.MethodPost, c.paths.Refresh, payload, "", nil, log)
	if err != nil {
		return "", err
	}

	if !resp.ok() {
		log.Info(ctx, "refresh rejected, clearing session", "status", resp.status)
		c.clearIfRefresh(ctx, refresh)
		return "", &RefreshError{Status: resp.status, Body: string(resp.body)}
	}

	var rr models.RefreshResponse
	if err := json.Unmarshal(resp.body, &rr); err != nil || rr.Access == "" {
		if err == nil {
			err = errors.New("no access token in response")
		}
		c.clearIfRefresh(ctx, refresh)
		return "", &RefreshError{Status: resp.status, Body: string(resp.body), Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// logged out or logged in again while the refresh was in flight
	if c.creds.RefreshToken != refresh {
		log.Debug(ctx, "credentials changed during refresh, new access token not stored")
		return rr.Access, nil
	}

	c.creds.AccessToken = rr.Access
	if err := c.store.SaveAccess(ctx, rr.Access); err != nil {
		log.Warn(ctx, "failed to persist refreshed access token", "error", err)
	}
	return rr.Access, nil
}
