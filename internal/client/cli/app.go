package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/services"
	"github.com/dmitrijs2005/healthsurv/internal/client/session"
	"github.com/dmitrijs2005/healthsurv/internal/logging"
)

type App struct {
	authService      services.AuthService
	approvalService  services.ApprovalService
	dashboardService services.DashboardService
	requester        session.Requester
	log              logging.Logger

	user   *models.UserProfile
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the CLI on top of an initialized session client.
func NewApp(s *session.Client, log logging.Logger) *App {
	return &App{
		authService:      services.NewAuthService(s),
		approvalService:  services.NewApprovalService(s),
		dashboardService: services.NewDashboardService(s),
		requester:        s,
		log:              log,
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
	}
}

// Run restores the previous session, if any, and blocks in the REPL until
// the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Health surveillance CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		if p, err := a.authService.Profile(ctx); err != nil {
			a.log.Warn(ctx, "stored session could not be restored", "error", err)
			fmt.Fprintln(a.out, describeError(err))
		} else {
			a.user = p
			fmt.Fprintf(a.out, "Session restored for %s\n", p.FullName())
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.authService.Status().Authenticated
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	if a.user == nil {
		return "(logged in)"
	}
	if role := a.user.PrimaryRole(); role != "" {
		return fmt.Sprintf("(%s %s)", a.user.Username, role)
	}
	return fmt.Sprintf("(%s)", a.user.Username)
}
