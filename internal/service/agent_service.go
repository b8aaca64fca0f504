package service

import (
	"context"
	"fmt"

	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
)

// AgentBackend is the slice of the backend client the agent service needs.
type AgentBackend interface {
	ListAgents(ctx context.Context, token, status string) ([]model.Agent, error)
	GetAgent(ctx context.Context, token, id string) (*model.Agent, error)
	AgentInquiries(ctx context.Context, token, id string) (*model.AgentWorkload, error)
}

// AgentService serves the agent roster and per-agent workloads.
type AgentService interface {
	List(ctx context.Context, sess *model.Session, status string) ([]model.Agent, error)
	Get(ctx context.Context, sess *model.Session, id string) (*model.Agent, error)
	Workload(ctx context.Context, sess *model.Session, id string) (*model.AgentWorkload, error)
	// OwnWorkload resolves the workload of the agent the session belongs to,
	// for the agent portal.
	OwnWorkload(ctx context.Context, sess *model.Session) (*model.AgentWorkload, error)
}

type agentService struct {
	backend AgentBackend
}

// NewAgentService creates a new agent service.
func NewAgentService(backend AgentBackend) AgentService {
	return &agentService{backend: backend}
}

func (s *agentService) List(ctx context.Context, sess *model.Session, status string) ([]model.Agent, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	return s.backend.ListAgents(ctx, token, status)
}

func (s *agentService) Get(ctx context.Context, sess *model.Session, id string) (*model.Agent, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	return s.backend.GetAgent(ctx, token, id)
}

func (s *agentService) Workload(ctx context.Context, sess *model.Session, id string) (*model.AgentWorkload, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	return s.backend.AgentInquiries(ctx, token, id)
}

// OwnWorkload uses the agent record linked to the logged-in user.
func (s *agentService) OwnWorkload(ctx context.Context, sess *model.Session) (*model.AgentWorkload, error) {
	token, err := bearerToken(sess)
	if err != nil {
		return nil, err
	}
	if sess.User.LinkedID == "" {
		return nil, fmt.Errorf("%w: no agent record linked to this account", apperrors.ErrForbidden)
	}
	return s.backend.AgentInquiries(ctx, token, sess.User.LinkedID)
}
