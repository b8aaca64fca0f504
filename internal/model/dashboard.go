package model

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	TotalProperties  int            `json:"total_properties"`
	ActiveProperties int            `json:"active_properties"`
	TotalInquiries   int            `json:"total_inquiries"`
	NewInquiries     int            `json:"new_inquiries"`
	TotalOwners      int            `json:"total_owners"`
	TotalAgents      int            `json:"total_agents"`
	PropertiesByType map[string]int `json:"properties_by_type"`
	RecentInquiries  []Inquiry      `json:"recent_inquiries"`
}
