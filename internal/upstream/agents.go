package upstream

import (
	"context"
	"net/http"
	"net/url"

	"brokerweb/internal/model"
)

// ListAgents fetches the agent roster.
func (c *Client) ListAgents(ctx context.Context, token, status string) ([]model.Agent, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}

	var agents []model.Agent
	if err := c.do(ctx, http.MethodGet, "/api/agents", token, q, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// GetAgent fetches one agent.
func (c *Client) GetAgent(ctx context.Context, token, id string) (*model.Agent, error) {
	var agent model.Agent
	if err := c.do(ctx, http.MethodGet, "/api/agents/"+url.PathEscape(id), token, nil, nil, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// AgentInquiries fetches an agent's workload: the agent record, totals per
// pipeline state and the assigned inquiries.
func (c *Client) AgentInquiries(ctx context.Context, token, id string) (*model.AgentWorkload, error) {
	var workload model.AgentWorkload
	if err := c.do(ctx, http.MethodGet, "/api/agents/"+url.PathEscape(id)+"/inquiries", token, nil, nil, &workload); err != nil {
		return nil, err
	}
	return &workload, nil
}
