package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
)

// Pending lists sign-up requests waiting for review.
func (a *App) Pending(ctx context.Context) error {
	regs, err := a.approvalService.Registrations(ctx, models.RegistrationPending)
	if err != nil {
		return err
	}
	if len(regs) == 0 {
		fmt.Fprintln(a.out, "No pending requests")
		return nil
	}
	for _, r := range regs {
		role := r.RequestedRole.Name
		if role == "" {
			role = "role #" + strconv.Itoa(r.RequestedRole.ID)
		}
		fmt.Fprintf(a.out, "#%d\t%s <%s>\t%s\t%s\n", r.ID, r.Username, r.Email, role, r.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (a *App) Approve(ctx context.Context, id string) error {
	return a.review(ctx, id, a.approvalService.Approve)
}

func (a *App) Reject(ctx context.Context, id string) error {
	return a.review(ctx, id, a.approvalService.Reject)
}

type reviewFn func(ctx context.Context, id int, notes string) (*models.ReviewResult, error)

func (a *App) review(ctx context.Context, id string, fn reviewFn) error {
	n, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("invalid registration id %q", id)
	}

	notes, err := getSimpleText(a.reader, "Admin notes (optional)", a.out)
	if err != nil {
		return err
	}

	res, err := fn(ctx, n, notes)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Message)
	return nil
}
