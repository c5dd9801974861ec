package session

import (
	"context"
	"net/http"
)

// Requester is the request surface used by the generic helpers. *Client
// implements it.
type Requester interface {
	Do(ctx context.Context, req Request, out any) error
}

func Get[T any](ctx context.Context, r Requester, endpoint string, opts ...RequestOption) (T, error) {
	return call[T](ctx, r, http.MethodGet, endpoint, nil, opts)
}

func Post[T any](ctx context.Context, r Requester, endpoint string, body any, opts ...RequestOption) (T, error) {
	return call[T](ctx, r, http.MethodPost, endpoint, body, opts)
}

func Put[T any](ctx context.Context, r Requester, endpoint string, body any, opts ...RequestOption) (T, error) {
	return call[T](ctx, r, http.MethodPut, endpoint, body, opts)
}

func Patch[T any](ctx context.Context, r Requester, endpoint string, body any, opts ...RequestOption) (T, error) {
	return call[T](ctx, r, http.MethodPatch, endpoint, body, opts)
}

func Delete[T any](ctx context.Context, r Requester, endpoint string, opts ...RequestOption) (T, error) {
	return call[T](ctx, r, http.MethodDelete, endpoint, nil, opts)
}

func call[T any](ctx context.Context, r Requester, method, endpoint string, body any, opts []RequestOption) (T, error) {
	req := Request{Method: method, Endpoint: endpoint, Body: body}
	for _, opt := range opts {
		opt(&req)
	}

	var out T
	if err := r.Do(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
