package model

// User is the backend's record for an authenticated back-office user. The
// gateway keeps a transient copy inside the session; the backend owns it.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	LinkedID string `json:"linked_id,omitempty"`
}

// Session pairs the upstream bearer token with the cached user record.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Valid reports whether the session may be used. A token without a cached
// user, or the reverse, counts as no session at all.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User.ID != ""
}
