package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"brokerweb/internal/model"
)

// PropertyFilter narrows the catalog listing. Zero values mean "all".
type PropertyFilter struct {
	PropertyType string
	Status       string
	OwnerID      string
	Limit        int
}

// PropertyInput is the payload for creating a listing (admin and seeder).
type PropertyInput struct {
	Title        string   `json:"title"`
	PropertyType string   `json:"property_type"`
	Location     string   `json:"location"`
	Sector       string   `json:"sector,omitempty"`
	Price        string   `json:"price"`
	PriceLabel   string   `json:"price_label"`
	Description  string   `json:"description"`
	Beds         int      `json:"beds"`
	Baths        int      `json:"baths"`
	Area         string   `json:"area"`
	Amenities    []string `json:"amenities,omitempty"`
	Images       []string `json:"images,omitempty"`
	OwnerID      string   `json:"owner_id,omitempty"`
}

// ListProperties fetches the catalog, optionally filtered.
func (c *Client) ListProperties(ctx context.Context, filter PropertyFilter) ([]model.Property, error) {
	q := url.Values{}
	if filter.PropertyType != "" {
		q.Set("property_type", filter.PropertyType)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.OwnerID != "" {
		q.Set("owner_id", filter.OwnerID)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	var props []model.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties", "", q, nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty fetches one listing by id.
func (c *Client) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	var prop model.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/"+url.PathEscape(id), "", nil, nil, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

// CreateProperty publishes a new listing.
func (c *Client) CreateProperty(ctx context.Context, token string, in PropertyInput) (*model.Property, error) {
	var prop model.Property
	if err := c.do(ctx, http.MethodPost, "/api/properties", token, nil, in, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}
