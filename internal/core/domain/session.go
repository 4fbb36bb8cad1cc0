package domain

// Durable storage keys for the persisted session. Absence of either key
// means the user is unauthenticated.
const (
	SessionKeyToken = "token"
	SessionKeyRole  = "userRole"
)

// Roles known to the console.
const (
	RoleAdmin     = "admin"
	RolePartner   = "partner"
	RoleAssociate = "associate"
	RoleIntern    = "intern"
)

// Session is the authentication token and role pair. Token and Role are set
// and cleared together; a session with one but not the other never escapes
// the session manager.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"userRole"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Empty reports whether both fields are unset.
func (s Session) Empty() bool {
	return s.Token == "" && s.Role == ""
}
