package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// now is a test seam for the status command.
var now = time.Now

// Login prompts for credentials and authenticates. The previous session, if
// any, is replaced only when the login succeeds. The password is wiped by
// the auth service once sent.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	profile, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		a.log.Info(ctx, "login failed", "username", userName, "error", err)
		return err
	}

	a.user = profile
	fmt.Fprintf(a.out, "Welcome, %s!\n", profile.FullName())
	return nil
}

// Logout drops the session. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Status prints the local session state without contacting the server.
func (a *App) Status(ctx context.Context) error {
	st := a.authService.Status()
	if !st.Authenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintln(a.out, "Logged in")
	if st.TokenErr != nil {
		fmt.Fprintf(a.out, "  access token: unreadable (%v)\n", st.TokenErr)
		return nil
	}
	fmt.Fprintf(a.out, "  %s\n", st.Token)
	if st.Token.Expired(now()) {
		fmt.Fprintln(a.out, "  access token expired, it will be refreshed on the next request")
	} else if left := st.Token.Remaining(now()); left > 0 {
		fmt.Fprintf(a.out, "  valid for %s\n", left.Round(time.Second))
	}
	return nil
}

// Profile fetches and prints the current user.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}
	a.user = p

	roles := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, r.Name)
	}

	fmt.Fprintf(a.out, "%s (%s)\n", p.FullName(), p.Username)
	fmt.Fprintf(a.out, "  email:    %s\n", p.Email)
	fmt.Fprintf(a.out, "  roles:    %s\n", strings.Join(roles, ", "))
	fmt.Fprintf(a.out, "  verified: %t\n", p.IsVerified)
	return nil
}

// Roles lists the roles a sign-up request may ask for.
func (a *App) Roles(ctx context.Context) error {
	roles, err := a.authService.Roles(ctx)
	if err != nil {
		return err
	}
	for _, r := range roles {
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", r.ID, r.Name, r.Description)
	}
	return nil
}

// Register prompts for the sign-up details and submits the request. The
// account becomes usable once an administrator approves it.
func (a *App) Register(ctx context.Context) error {
	var req models.RegistrationRequest
	var err error

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter username", &req.Username},
		{"Enter email", &req.Email},
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Phone number", &req.PhoneNumber},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	roleID, err := getSimpleText(a.reader, "Requested role id (see 'roles')", a.out)
	if err != nil {
		return err
	}
	if req.RequestedRoleID, err = strconv.Atoi(roleID); err != nil {
		return fmt.Errorf("invalid role id %q", roleID)
	}

	if req.Reason, err = getMultiline(a.reader, "Reason for the request", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	req.Password = string(password)
	common.WipeByteArray(password)

	receipt, err := a.authService.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (request #%d, %s)\n", receipt.Message, receipt.RegistrationID, receipt.Status)
	return nil
}
