package upstream

import (
	"context"
	"net/http"
	"net/url"

	"brokerweb/internal/model"
)

// OwnerInput is the payload for creating or updating an owner.
type OwnerInput struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	BankDetails string `json:"bank_details,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ListOwners fetches the owner roster.
func (c *Client) ListOwners(ctx context.Context, token string) ([]model.Owner, error) {
	var owners []model.Owner
	if err := c.do(ctx, http.MethodGet, "/api/owners", token, nil, nil, &owners); err != nil {
		return nil, err
	}
	return owners, nil
}

// GetOwner fetches one owner.
func (c *Client) GetOwner(ctx context.Context, token, id string) (*model.Owner, error) {
	var owner model.Owner
	if err := c.do(ctx, http.MethodGet, "/api/owners/"+url.PathEscape(id), token, nil, nil, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// CreateOwner registers a new owner.
func (c *Client) CreateOwner(ctx context.Context, token string, in OwnerInput) (*model.Owner, error) {
	var owner model.Owner
	if err := c.do(ctx, http.MethodPost, "/api/owners", token, nil, in, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// UpdateOwner updates an existing owner.
func (c *Client) UpdateOwner(ctx context.Context, token, id string, in OwnerInput) (*model.Owner, error) {
	var owner model.Owner
	if err := c.do(ctx, http.MethodPut, "/api/owners/"+url.PathEscape(id), token, nil, in, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// DeleteOwner removes an owner.
func (c *Client) DeleteOwner(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/owners/"+url.PathEscape(id), token, nil, nil, nil)
}

// OwnerDashboard fetches an owner's property and earnings summary.
func (c *Client) OwnerDashboard(ctx context.Context, token, id string) (*model.OwnerDashboard, error) {
	var dash model.OwnerDashboard
	if err := c.do(ctx, http.MethodGet, "/api/owners/"+url.PathEscape(id)+"/dashboard", token, nil, nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// DashboardStats fetches the admin landing page counters.
func (c *Client) DashboardStats(ctx context.Context, token string) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", token, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
