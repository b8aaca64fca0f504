package model

import "time"

// Property is a catalog listing. Prices are display strings as published by
// the backend ("25,000", "1.2 Cr"); the gateway never does arithmetic on them.
type Property struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	PropertyType string    `json:"property_type"`
	Location     string    `json:"location"`
	Sector       string    `json:"sector,omitempty"`
	Price        string    `json:"price"`
	PriceLabel   string    `json:"price_label"`
	Description  string    `json:"description"`
	Beds         int       `json:"beds"`
	Baths        int       `json:"baths"`
	Area         string    `json:"area"`
	Amenities    []string  `json:"amenities,omitempty"`
	Images       []string  `json:"images,omitempty"`
	Status       string    `json:"status"`
	OwnerID      string    `json:"owner_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}
