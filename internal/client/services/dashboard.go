package services

import (
	"context"

	"github.com/dmitrijs2005/healthsurv/internal/client/endpoints"
	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/session"
)

// DashboardService reads the surveillance data shown on the dashboards.
type DashboardService interface {
	AshaReports(ctx context.Context) ([]models.AshaReport, error)
	DistrictStats(ctx context.Context, districtID int) (models.Stats, error)
	StateStats(ctx context.Context) (models.Stats, error)
	Alerts(ctx context.Context) ([]models.Alert, error)
	RiskScores(ctx context.Context) ([]models.RiskScore, error)
}

type dashboardService struct {
	session session.Requester
}

func NewDashboardService(r session.Requester) DashboardService {
	return &dashboardService{session: r}
}

func (s *dashboardService) AshaReports(ctx context.Context) ([]models.AshaReport, error) {
	return getList[models.AshaReport](ctx, s.session, endpoints.AshaReports)
}

func (s *dashboardService) DistrictStats(ctx context.Context, districtID int) (models.Stats, error) {
	return session.Get[models.Stats](ctx, s.session, endpoints.DistrictStats(districtID))
}

func (s *dashboardService) StateStats(ctx context.Context) (models.Stats, error) {
	return session.Get[models.Stats](ctx, s.session, endpoints.StateStats)
}

func (s *dashboardService) Alerts(ctx context.Context) ([]models.Alert, error) {
	return getList[models.Alert](ctx, s.session, endpoints.Alerts)
}

func (s *dashboardService) RiskScores(ctx context.Context) ([]models.RiskScore, error) {
	return getList[models.RiskScore](ctx, s.session, endpoints.RiskScores)
}
