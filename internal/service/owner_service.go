package service

import (
	"context"
	"fmt"

	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
	"brokerweb/internal/upstream"
)

// OwnerBackend is the slice of the backend client the owner service needs.
type OwnerBackend interface {
	ListOwners(ctx context.Context, token string) ([]model.Owner, error)
	GetOwner(ctx context.Context, token, id string) (*model.Owner, error)
	CreateOwner(ctx context.Context, token string, in upstream.OwnerInput) (*model.Owner, error)
	UpdateOwner(ctx context.Context, token, id string, in upstream.OwnerInput) (*model.Owner, error)
	DeleteOwner(ctx context.Context, token, id string) error
	OwnerDashboard(ctx context.Context, token, id string) (*model.OwnerDashboard, error)
}

// OwnerService manages property owners and their earnings dashboards.
type OwnerService interface {
	List(ctx context.Context, sess *model.Session) ([]model.Owner, error)
	Get(ctx context.Context, sess *model.Session, id string) (*model.Owner, error)
	Create(ctx context.Context, sess *model.Session, in upstream.OwnerInput) (*model.Owner, error)
	Update(ctx context.Context, sess *model.Session, id string, in upstream.OwnerInput) (*model.Owner, error)
	Delete(ctx context.Context, sess *model.Session, id string) error
	Dashboard(ctx context.Context, sess *model.Session, id string) (*model.OwnerDashboard, error)
	// OwnDashboard resolves the dashboard of the owner the session belongs
	// to, for the owner portal.
	OwnDashboard(ctx context.Context, sess *model.Session) (*model.OwnerDashboard, error)
}

type ownerService struct {
	backend OwnerBackend
}

// NewOwnerService creates a new owner service.
func NewOwnerService(backend OwnerBackend) OwnerService {
	return &ownerService{backend: backend}
}

func (s *ownerService) List(ctx context.Context, sess *model.Session) ([]model.Owner, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	return s.backend.ListOwners(ctx, token)
}

func (s *ownerService) Get(ctx context.Context, sess *model.Session, id string) (*model.Owner, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	return s.backend.GetOwner(ctx, token, id)
}

func (s *ownerService) Create(ctx context.Context, sess *model.Session, in upstream.OwnerInput) (*model.Owner, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", apperrors.ErrValidation)
	}
	return s.backend.CreateOwner(ctx, token, in)
}

func (s *ownerService) Update(ctx context.Context, sess *model.Session, id string, in upstream.OwnerInput) (*model.Owner, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	return s.backend.UpdateOwner(ctx, token, id, in)
}

func (s *ownerService) Delete(ctx context.Context, sess *model.Session, id string) error {
	token, err := bearerToken(sess)
	if err != nil {
		return err
	}
	return s.backend.DeleteOwner(ctx, token, id)
}

func (s *ownerService) Dashboard(ctx context.Context, sess *model.Session, id string) (*model.OwnerDashboard, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	return s.backend.OwnerDashboard(ctx, token, id)
}

// OwnDashboard uses the owner record linked to the logged-in user. A session
// without a linked owner record cannot see any dashboard.
func (s *ownerService) OwnDashboard(ctx context.Context, sess *model.Session) (*model.OwnerDashboard, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	if sess.User.LinkedID == "" {
		return nil, fmt.Errorf("%w: no owner record linked to this account", apperrors.ErrForbidden)
	}
	return s.backend.OwnerDashboard(ctx, token, sess.User.LinkedID)
}
