package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/services"
	"github.com/dmitrijs2005/healthsurv/internal/client/session"
	"github.com/dmitrijs2005/healthsurv/internal/logging"
)

// ---- input stubs ----

// stubInputs answers text prompts with answers in order and the password
// prompt with password.
func stubInputs(t *testing.T, password []byte, answers ...string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})

	next := func() string {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt")
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
}

// ---- fake services ----

type fakeAuth struct {
	status services.Status

	loginUser    string
	loginPass    []byte
	loginProfile *models.UserProfile
	loginErr     error

	logoutCalls int

	profile    *models.UserProfile
	profileErr error

	roles []models.Role

	registered  models.RegistrationRequest
	receipt     *models.RegistrationReceipt
	registerErr error
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) (*models.UserProfile, error) {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.status.Authenticated = true
	return f.loginProfile, nil
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalls++
	f.status = services.Status{}
}

func (f *fakeAuth) Profile(context.Context) (*models.UserProfile, error) {
	return f.profile, f.profileErr
}

func (f *fakeAuth) UpdateProfile(context.Context, models.ProfileUpdate) (*models.UserProfile, error) {
	return f.profile, f.profileErr
}

func (f *fakeAuth) Register(_ context.Context, req models.RegistrationRequest) (*models.RegistrationReceipt, error) {
	f.registered = req
	return f.receipt, f.registerErr
}

func (f *fakeAuth) Roles(context.Context) ([]models.Role, error) { return f.roles, nil }

func (f *fakeAuth) Status() services.Status { return f.status }

type fakeApproval struct {
	regs      []models.Registration
	regStatus models.RegistrationStatus
	err       error

	reviewed []string
}

func (f *fakeApproval) Registrations(_ context.Context, st models.RegistrationStatus) ([]models.Registration, error) {
	f.regStatus = st
	return f.regs, f.err
}

func (f *fakeApproval) Approve(_ context.Context, id int, notes string) (*models.ReviewResult, error) {
	f.reviewed = append(f.reviewed, "approve", notes)
	return &models.ReviewResult{Message: "Registration approved", RegistrationID: id}, f.err
}

func (f *fakeApproval) Reject(_ context.Context, id int, notes string) (*models.ReviewResult, error) {
	f.reviewed = append(f.reviewed, "reject", notes)
	return &models.ReviewResult{Message: "Registration rejected", RegistrationID: id}, f.err
}

type fakeDashboard struct {
	reports  []models.AshaReport
	alerts   []models.Alert
	scores   []models.RiskScore
	stats    models.Stats
	district int
	err      error
}

func (f *fakeDashboard) AshaReports(context.Context) ([]models.AshaReport, error) {
	return f.reports, f.err
}

func (f *fakeDashboard) DistrictStats(_ context.Context, id int) (models.Stats, error) {
	f.district = id
	return f.stats, f.err
}

func (f *fakeDashboard) StateStats(context.Context) (models.Stats, error) { return f.stats, f.err }

func (f *fakeDashboard) Alerts(context.Context) ([]models.Alert, error) { return f.alerts, f.err }

func (f *fakeDashboard) RiskScores(context.Context) ([]models.RiskScore, error) {
	return f.scores, f.err
}

// fakeRequester answers every request with body, or err.
type fakeRequester struct {
	got  []session.Request
	body string
	err  error
}

func (f *fakeRequester) Do(_ context.Context, req session.Request, out any) error {
	f.got = append(f.got, req)
	if f.err != nil {
		return f.err
	}
	if f.body == "" {
		return nil
	}
	return json.Unmarshal([]byte(f.body), out)
}

// newTestApp wires fakes into an App writing to the returned buffer.
func newTestApp(auth *fakeAuth) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	if auth == nil {
		auth = &fakeAuth{}
	}
	return &App{
		authService:      auth,
		approvalService:  &fakeApproval{},
		dashboardService: &fakeDashboard{},
		requester:        &fakeRequester{},
		log:              logging.Nop{},
		reader:           bufio.NewReader(strings.NewReader("")),
		out:              &out,
	}, &out
}
