package model

import "time"

// Inquiry is a customer lead tracked through a status lifecycle. All fields
// are owned and mutated by the backend; the gateway renders and posts back.
type Inquiry struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Phone             string            `json:"phone"`
	Email             string            `json:"email,omitempty"`
	Message           string            `json:"message,omitempty"`
	InquiryType       string            `json:"inquiry_type"`
	Status            string            `json:"status"`
	AssignedAgentID   string            `json:"assigned_agent_id,omitempty"`
	AssignedAgentName string            `json:"assigned_agent_name,omitempty"`
	ConversationLogs  []ConversationLog `json:"conversation_logs,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at,omitempty"`
}

// ConversationLog is an append-only note attached to an inquiry, optionally
// carrying a status change. Received from the backend ordered by timestamp
// ascending.
type ConversationLog struct {
	Message      string    `json:"message"`
	AgentName    string    `json:"agent_name"`
	Timestamp    time.Time `json:"timestamp"`
	StatusChange string    `json:"status_change,omitempty"`
}

// AgentWorkload is the per-agent inquiry roster returned by
// GET /api/agents/{id}/inquiries.
type AgentWorkload struct {
	Agent          Agent          `json:"agent"`
	TotalInquiries int            `json:"total_inquiries"`
	StatusCounts   map[string]int `json:"status_counts"`
	Inquiries      []Inquiry      `json:"inquiries"`
}
