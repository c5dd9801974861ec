package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthsurv/internal/client/endpoints"
	"github.com/dmitrijs2005/healthsurv/internal/client/jwtinfo"
	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/session"
	"github.com/dmitrijs2005/healthsurv/internal/common"
)

// AuthService defines the account operations of the CLI.
//
// Contract:
//   - Login: authenticate, persist the credential pair and return the profile.
//   - Logout: drop the credential pair. Never fails.
//   - Profile / UpdateProfile: read and patch the logged-in user.
//   - Register: submit a sign-up request for administrator review.
//   - Roles: list the roles a sign-up may request.
//   - Status: local session state, no network I/O.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (*models.UserProfile, error)
	Logout(ctx context.Context)
	Profile(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error)
	Register(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationReceipt, error)
	Roles(ctx context.Context) ([]models.Role, error)
	Status() Status
}

// Status describes the local session.
type Status struct {
	Authenticated bool
	// Token holds the decoded access token claims; TokenErr is set instead
	// when the token could not be decoded.
	Token    jwtinfo.Info
	TokenErr error
}

type authService struct {
	session Session
}

// NewAuthService constructs an AuthService on top of a session client.
func NewAuthService(s Session) AuthService {
	return &authService{session: s}
}

// Login wipes password once it has been sent. If the profile cannot be
// fetched afterwards the session is kept and the error returned.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.UserProfile, error) {
	_, err := a.session.Login(ctx, username, string(password))
	common.WipeByteArray(password)
	if err != nil {
		return nil, err
	}

	profile, err := a.session.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile error: %w", err)
	}
	return profile, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}

func (a *authService) Profile(ctx context.Context) (*models.UserProfile, error) {
	return a.session.Profile(ctx)
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	return a.session.UpdateProfile(ctx, upd)
}

func (a *authService) Register(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationReceipt, error) {
	receipt, err := session.Post[models.RegistrationReceipt](ctx, a.session, endpoints.Register, req)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (a *authService) Roles(ctx context.Context) ([]models.Role, error) {
	return getList[models.Role](ctx, a.session, endpoints.Roles)
}

func (a *authService) Status() Status {
	creds := a.session.Credentials()
	st := Status{Authenticated: creds.Authenticated()}
	if st.Authenticated {
		st.Token, st.TokenErr = jwtinfo.Inspect(creds.AccessToken)
	}
	return st
}
