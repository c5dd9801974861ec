package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/session"
)

// Session is the part of *session.Client the services depend on.
type Session interface {
	session.Requester
	Login(ctx context.Context, username, password string) (models.Credentials, error)
	Logout(ctx context.Context)
	IsAuthenticated() bool
	Credentials() models.Credentials
	Profile(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error)
}

// page is a paginated list response.
type page[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// getList fetches a list endpoint. The backend answers with either a bare
// array or a page object depending on the view.
func getList[T any](ctx context.Context, s session.Requester, endpoint string) ([]T, error) {
	raw, err := session.Get[json.RawMessage](ctx, s, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var items []T
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var p page[T]
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return p.Results, nil
}
