package service

import (
	"context"

	"brokerweb/internal/model"
)

// DashboardBackend is the slice of the backend client the dashboard service
// needs.
type DashboardBackend interface {
	DashboardStats(ctx context.Context, token string) (*model.DashboardStats, error)
}

// DashboardService serves the admin landing page counters.
type DashboardService interface {
	Stats(ctx context.Context, sess *model.Session) (*model.DashboardStats, error)
}

type dashboardService struct {
	backend DashboardBackend
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(backend DashboardBackend) DashboardService {
	return &dashboardService{backend: backend}
}

func (s *dashboardService) Stats(ctx context.Context, sess *model.Session) (*model.DashboardStats, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	return s.backend.DashboardStats(ctx, token)
}
