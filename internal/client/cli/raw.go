package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/healthsurv/internal/client/session"
)

// Get performs an authenticated GET of an arbitrary API path and prints the
// response.
func (a *App) Get(ctx context.Context, path string) error {
	body, err := session.Get[json.RawMessage](ctx, a.requester, path)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		fmt.Fprintln(a.out, "(empty response)")
		return nil
	}
	return a.printJSON(body)
}

// Delete performs an authenticated DELETE of an arbitrary API path.
func (a *App) Delete(ctx context.Context, path string) error {
	if _, err := session.Delete[json.RawMessage](ctx, a.requester, path); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted", path)
	return nil
}
