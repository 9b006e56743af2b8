package domain

// User is the authenticated shopper identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Session is the client's record of whether, and as whom, the shopper is
// authenticated. The zero value is the empty, signed-out session.
type Session struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`
}
