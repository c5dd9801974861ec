// Package endpoints is the static table of backend paths, relative to the
// API base URL. Paths end with a slash, as the backend router expects.
package endpoints

import "fmt"

const (
	Login   = "/auth/login/"
	Refresh = "/auth/refresh/"
	Profile = "/auth/profile/"

	Register             = "/auth/register/"
	Roles                = "/auth/roles/"
	Registrations        = "/auth/registrations/"
	PendingRegistrations = "/auth/registrations/pending/"

	AshaReports  = "/asha/reports/"
	WaterQuality = "/asha/water-quality/"

	Districts = "/district/boundaries/"
	Villages  = "/district/villages/"

	ClinicalReports = "/clinical/reports/"

	Alerts = "/alerts/district-alerts/"

	Advisories = "/state/advisories/"
	StateStats = "/state/advisories/dashboard_stats/"

	RiskScores = "/analytics/risk-scores/"
	AuditLogs  = "/analytics/audit-logs/"
	Predict    = "/analytics/predict/"
)

// DistrictStats is the dashboard statistics path of one district.
func DistrictStats(id int) string {
	return fmt.Sprintf("/district/boundaries/%d/dashboard_stats/", id)
}

// ApproveRegistration is the approve action of one registration request.
func ApproveRegistration(id int) string {
	return fmt.Sprintf("/auth/registrations/%d/approve/", id)
}

// RejectRegistration is the reject action of one registration request.
func RejectRegistration(id int) string {
	return fmt.Sprintf("/auth/registrations/%d/reject/", id)
}

// AuthPaths are the paths the session client itself talks to.
type AuthPaths struct {
	Login   string
	Refresh string
	Profile string
}

// DefaultAuthPaths returns the standard authentication paths.
func DefaultAuthPaths() AuthPaths {
	return AuthPaths{Login: Login, Refresh: Refresh, Profile: Profile}
}

// WithDefaults fills empty fields from DefaultAuthPaths.
func (p AuthPaths) WithDefaults() AuthPaths {
	d := DefaultAuthPaths()
	if p.Login == "" {
		p.Login = d.Login
	}
	if p.Refresh == "" {
		p.Refresh = d.Refresh
	}
	if p.Profile == "" {
		p.Profile = d.Profile
	}
	return p
}
