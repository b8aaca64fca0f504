package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Owner is a property owner managed through the admin back-office.
type Owner struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address,omitempty"`
	BankDetails string    `json:"bank_details,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// EarningsEntry is one month's payout line in an owner's earnings history.
type EarningsEntry struct {
	Month      string          `json:"month"`
	PropertyID string          `json:"property_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAt     time.Time       `json:"paid_at,omitempty"`
}

// OwnerDashboard is the earnings/property summary returned by
// GET /api/owners/{id}/dashboard and rendered by every owner-portal view.
type OwnerDashboard struct {
	Owner                Owner           `json:"owner"`
	TotalProperties      int             `json:"total_properties"`
	ActiveProperties     int             `json:"active_properties"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
	CurrentMonthEarnings decimal.Decimal `json:"current_month_earnings"`
	Properties           []Property      `json:"properties"`
	EarningsHistory      []EarningsEntry `json:"earnings_history"`
}
