package services

import (
	"context"

	"github.com/dmitrijs2005/healthsurv/internal/client/endpoints"
	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/dmitrijs2005/healthsurv/internal/client/session"
)

// ApprovalService reviews sign-up requests. Administrators only; the backend
// answers 403 otherwise.
type ApprovalService interface {
	// Registrations lists requests with the given status, or all of them
	// when status is empty.
	Registrations(ctx context.Context, status models.RegistrationStatus) ([]models.Registration, error)
	Approve(ctx context.Context, id int, notes string) (*models.ReviewResult, error)
	Reject(ctx context.Context, id int, notes string) (*models.ReviewResult, error)
}

type approvalService struct {
	session session.Requester
}

func NewApprovalService(r session.Requester) ApprovalService {
	return &approvalService{session: r}
}

func (s *approvalService) Registrations(ctx context.Context, status models.RegistrationStatus) ([]models.Registration, error) {
	if status == models.RegistrationPending {
		return getList[models.Registration](ctx, s.session, endpoints.PendingRegistrations)
	}

	all, err := getList[models.Registration](ctx, s.session, endpoints.Registrations)
	if err != nil || status == "" {
		return all, err
	}

	out := make([]models.Registration, 0, len(all))
	for _, r := range all {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *approvalService) Approve(ctx context.Context, id int, notes string) (*models.ReviewResult, error) {
	return s.review(ctx, endpoints.ApproveRegistration(id), notes)
}

func (s *approvalService) Reject(ctx context.Context, id int, notes string) (*models.ReviewResult, error) {
	return s.review(ctx, endpoints.RejectRegistration(id), notes)
}

func (s *approvalService) review(ctx context.Context, endpoint, notes string) (*models.ReviewResult, error) {
	res, err := session.Post[models.ReviewResult](ctx, s.session, endpoint, models.ReviewRequest{AdminNotes: notes})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
