package core

import "context"

// Ports define interfaces for external dependencies

// UserStore defines read access to the credential store. User records
// are mutated by account management outside this library.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByEmailAndRole returns the single user matching email
	// (case-insensitive) and role. Implementations must return
	// ErrUserNotFound for both zero and multiple matches.
	GetUserByEmailAndRole(ctx context.Context, email string, role Role) (*User, error)
}

// RememberTokenStore defines remember-token persistence.
type RememberTokenStore interface {
	CreateRememberToken(ctx context.Context, t *RememberToken) error

	// GetRememberTokenUser returns the token row joined with its owner,
	// or ErrTokenNotFound. Expiry and status filtering stay with the
	// manager so the rules live in one place.
	GetRememberTokenUser(ctx context.Context, tokenHash string) (*RememberToken, *User, error)

	// DeleteRememberToken removes a token row. Deleting an absent row
	// is not an error.
	DeleteRememberToken(ctx context.Context, tokenHash string) error
	DeleteUserRememberTokens(ctx context.Context, userID string) (int, error)

	// Cleanup
	DeleteExpiredRememberTokens(ctx context.Context) (int, error)
}

// SessionStore defines server-side session persistence.
type SessionStore interface {
	// SaveSession inserts or replaces the record keyed by token hash.
	SaveSession(ctx context.Context, s *SessionRecord) error

	GetSessionByHash(ctx context.Context, tokenHash string) (*SessionRecord, error)

	DeleteSessionByHash(ctx context.Context, tokenHash string) error

	// Cleanup
	DeleteExpiredSessions(ctx context.Context) (int, error)
}

// AuthStorage is the full storage surface a database adapter provides.
type AuthStorage interface {
	UserStore
	RememberTokenStore
	SessionStore
}
