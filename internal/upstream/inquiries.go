package upstream

import (
	"context"
	"net/http"
	"net/url"

	"brokerweb/internal/model"
)

// InquiryInput is the public lead-capture payload.
type InquiryInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Message     string `json:"message,omitempty"`
	InquiryType string `json:"inquiry_type"`
	PropertyID  string `json:"property_id,omitempty"`
	SourcePage  string `json:"source_page,omitempty"`
}

// InquiryFilter narrows the inquiry listing.
type InquiryFilter struct {
	Status      string
	InquiryType string
}

// CreateInquiry submits a public inquiry. Unauthenticated by design.
func (c *Client) CreateInquiry(ctx context.Context, in InquiryInput) (*model.Inquiry, error) {
	var inq model.Inquiry
	if err := c.do(ctx, http.MethodPost, "/api/inquiries", "", nil, in, &inq); err != nil {
		return nil, err
	}
	return &inq, nil
}

// ListInquiries fetches the inquiry roster.
func (c *Client) ListInquiries(ctx context.Context, token string, filter InquiryFilter) ([]model.Inquiry, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.InquiryType != "" {
		q.Set("inquiry_type", filter.InquiryType)
	}

	var inquiries []model.Inquiry
	if err := c.do(ctx, http.MethodGet, "/api/inquiries", token, q, nil, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

// GetInquiry fetches one inquiry with its full conversation log.
func (c *Client) GetInquiry(ctx context.Context, token, id string) (*model.Inquiry, error) {
	var inq model.Inquiry
	if err := c.do(ctx, http.MethodGet, "/api/inquiries/"+url.PathEscape(id), token, nil, nil, &inq); err != nil {
		return nil, err
	}
	return &inq, nil
}

// UpdateStatus sets an inquiry's status with no actor attribution. This is
// the admin triage path; the agent workflow goes through AppendLog instead.
func (c *Client) UpdateStatus(ctx context.Context, token, id, status string) error {
	q := url.Values{}
	q.Set("status", status)
	return c.do(ctx, http.MethodPut, "/api/inquiries/"+url.PathEscape(id)+"/status", token, q, nil, nil)
}

// AppendLog appends a conversation entry attributed to an agent, optionally
// bundling a status change in the same call.
func (c *Client) AppendLog(ctx context.Context, token, id, agentID, message, newStatus string) error {
	q := url.Values{}
	q.Set("agent_id", agentID)
	q.Set("message", message)
	if newStatus != "" {
		q.Set("new_status", newStatus)
	}
	return c.do(ctx, http.MethodPost, "/api/inquiries/"+url.PathEscape(id)+"/log", token, q, nil, nil)
}

type assignRequest struct {
	AgentID string `json:"agent_id"`
}

// AssignInquiry hands an inquiry to an agent.
func (c *Client) AssignInquiry(ctx context.Context, token, id, agentID string) error {
	return c.do(ctx, http.MethodPut, "/api/inquiries/"+url.PathEscape(id)+"/assign", token, nil, assignRequest{AgentID: agentID}, nil)
}

// UnassignInquiry removes the current agent from an inquiry.
func (c *Client) UnassignInquiry(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodPut, "/api/inquiries/"+url.PathEscape(id)+"/unassign", token, nil, nil, nil)
}
