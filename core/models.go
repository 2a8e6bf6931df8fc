package core

import "time"

// User represents a stored identity record.
//
// Owned by account management outside this library; the auth core only
// ever reads it. The password hash never leaves this struct.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // unique, matched case-insensitively
	PasswordHash string    `json:"-"`     // Never expose in JSON
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// View strips the credential material from a user record.
func (u *User) View() *UserView {
	return &UserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// UserView is the identity snapshot safe to hold in session state or
// hand back to callers. No password hash, by construction.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// RememberToken is a long-lived login credential substitute.
//
// Only the digest of the opaque token is stored; the raw value makes a
// single round trip through the client cookie.
type RememberToken struct {
	TokenHash string    `json:"-"` // lookup key
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"` // absolute, no sliding renewal
	CreatedAt time.Time `json:"createdAt"`
}

// SessionRecord is the server-side state behind one session cookie.
// The client holds only the opaque session token.
type SessionRecord struct {
	ID        string `json:"id"`
	TokenHash string `json:"-"` // Never expose in JSON (security!)

	// identity snapshot, populated on establish
	UserID   string `json:"userId,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
	LoggedIn bool   `json:"loggedIn"`

	// Regenerated marks that the fixation guard already replaced the
	// identifier once for this session lifetime.
	Regenerated bool `json:"-"`

	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionData combines the identity view with session expiry.
// The model returned to clients.
type SessionData struct {
	User      *UserView `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Cookie carries the values the transport layer needs to emit a cookie.
// The core never touches HTTP directly; adapters translate this.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	Domain   string
	MaxAge   int // seconds; negative expires the cookie immediately
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
	SameSite string // "Strict" or "Lax"
}
