package model

import "time"

// Agent is a field agent on the brokerage roster.
type Agent struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	Designation           string    `json:"designation,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	Status                string    `json:"status"`
	TotalInquiriesHandled int       `json:"total_inquiries_handled"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
}
