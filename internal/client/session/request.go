package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/healthsurv/internal/logging"
	"github.com/google/uuid"
)

// Request describes one logical call. Endpoint is a path relative to the
// base URL or an absolute http(s) URL. Body, when non-nil, is sent as JSON.
type Request struct {
	Method   string
	Endpoint string
	Body     any
	Header   http.Header
}

// RequestOption adjusts a Request built by the generic helpers.
type RequestOption func(*Request)

// WithHeader adds an extra request header. Authorization cannot be set this
// way; it is always derived from the held access token.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Header == nil {
			r.Header = http.Header{}
		}
		r.Header.Add(key, value)
	}
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// Do sends req with the held access token and decodes a 2xx JSON body into
// out (out may be nil; an empty body leaves it untouched). On 401 it
// refreshes once and resends once, see the package documentation. Both
// attempts carry the same X-Request-ID.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", req.Method, req.Endpoint, err)
		}
		payload = b
	}

	requestID := uuid.NewString()
	header := req.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set("X-Request-ID", requestID)

	log := c.log.With("request_id", requestID, "method", req.Method, "endpoint", req.Endpoint)

	creds := c.Credentials()

	resp, err := c.roundTrip(ctx, req.Method, req.Endpoint, payload, creds.AccessToken, header, log)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized {
		if creds.RefreshToken == "" {
			log.Info(ctx, "unauthorized and no refresh token, clearing session")
			c.clearIfRefresh(ctx, "")
			return &AuthenticationError{
				Status: resp.status,
				Body:   string(resp.body),
				Reason: "no refresh token",
			}
		}

		access, err := c.refresh(ctx, creds.RefreshToken, log)
		if err != nil {
			var te *TransportError
			if errors.As(err, &te) {
				return err
			}
			c.clearIfRefresh(ctx, creds.RefreshToken)
			return &AuthenticationError{
				Status: resp.status,
				Body:   string(resp.body),
				Reason: "session expired",
				Err:    err,
			}
		}

		log.Debug(ctx, "access token refreshed, resending")
		resp, err = c.roundTrip(ctx, req.Method, req.Endpoint, payload, access, header, log)
		if err != nil {
			return err
		}
	}

	if !resp.ok() {
		return &APIError{Status: resp.status, Body: string(resp.body)}
	}

	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.Endpoint, err)
	}
	return nil
}

// roundTrip performs exactly one HTTP exchange and reads the whole body.
// The bearer header is set iff access is non-empty.
func (c *Client) roundTrip(ctx context.Context, method, endpoint string, payload []byte, access string, header http.Header, log logging.Logger) (*response, error) {
	url := c.resolve(endpoint)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, url, err)
	}

	for k, vs := range header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Del("Authorization")
	if access != "" {
		httpReq.Header.Set("Authorization", "Bearer "+access)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn(ctx, "request failed", "url", url, "error", err)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}

	log.Debug(ctx, "response received", "url", url, "status", httpResp.StatusCode, "authorized", access != "")
	return &response{status: httpResp.StatusCode, body: data}, nil
}

func (c *Client) resolve(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}
