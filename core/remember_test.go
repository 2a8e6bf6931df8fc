package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newRememberFixture(ttl time.Duration) (*RememberTokenManager, *FakeAuthStorage) {
	storage := NewFakeAuthStorage()
	config := DefaultRememberConfig()
	config.TTL = ttl
	return NewRememberTokenManager(config, storage), storage
}

// Requirement: Issue followed immediately by Validate resolves to the
// issuing user for any active account.
func TestRememberTokens_IssueValidateRoundtrip(t *testing.T) {
	// Arrange
	manager, storage := newRememberFixture(30 * 24 * time.Hour)
	storage.AddUser(&User{ID: "1", Name: "Alice", Email: "a@x.com", Role: RoleCustomer, Status: StatusActive})

	// Act
	token, err := manager.Issue(context.Background(), "1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	view, err := manager.Validate(context.Background(), token)

	// Assert
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if view.ID != "1" {
		t.Errorf("Validate() user id = %q, want %q", view.ID, "1")
	}
	if view.Role != RoleCustomer {
		t.Errorf("Validate() role = %q, want %q", view.Role, RoleCustomer)
	}
}

// Requirement: absent, expired and inactive-owner tokens all fail with
// ErrInvalidToken, with no distinction surfaced.
func TestRememberTokens_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		ttl   time.Duration
		setup func(m *RememberTokenManager, storage *FakeAuthStorage) string // returns token to validate
	}{
		{
			name: "unknown token",
			ttl:  time.Hour,
			setup: func(m *RememberTokenManager, storage *FakeAuthStorage) string {
				return "never-issued"
			},
		},
		{
			name: "empty token",
			ttl:  time.Hour,
			setup: func(m *RememberTokenManager, storage *FakeAuthStorage) string {
				return ""
			},
		},
		{
			name: "expired token",
			ttl:  -time.Minute, // already past its window at issue time
			setup: func(m *RememberTokenManager, storage *FakeAuthStorage) string {
				storage.AddUser(&User{ID: "1", Email: "a@x.com", Role: RoleCustomer, Status: StatusActive})
				token, _ := m.Issue(context.Background(), "1")
				return token
			},
		},
		{
			name: "owner no longer active",
			ttl:  time.Hour,
			setup: func(m *RememberTokenManager, storage *FakeAuthStorage) string {
				storage.AddUser(&User{ID: "1", Email: "a@x.com", Role: RoleCustomer, Status: StatusActive})
				token, _ := m.Issue(context.Background(), "1")
				storage.AddUser(&User{ID: "1", Email: "a@x.com", Role: RoleCustomer, Status: StatusSuspended})
				return token
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			manager, storage := newRememberFixture(test.ttl)
			token := test.setup(manager, storage)

			// Act
			_, err := manager.Validate(context.Background(), token)

			// Assert
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

// Requirement: Revoke invalidates the token, and revoking twice (or
// revoking something that never existed) never errors.
func TestRememberTokens_Revoke_Idempotent(t *testing.T) {
	// Arrange
	manager, storage := newRememberFixture(time.Hour)
	storage.AddUser(&User{ID: "1", Email: "a@x.com", Role: RoleCustomer, Status: StatusActive})
	token, err := manager.Issue(context.Background(), "1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Act + Assert
	if err := manager.Revoke(context.Background(), token); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := manager.Validate(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Validate() after revoke error = %v, want ErrInvalidToken", err)
	}
	if err := manager.Revoke(context.Background(), token); err != nil {
		t.Fatalf("second Revoke() error = %v", err)
	}
	if err := manager.Revoke(context.Background(), "never-issued"); err != nil {
		t.Fatalf("Revoke() of unknown token error = %v", err)
	}
}

// Requirement: a persistence failure during issuance surfaces as an
// error the caller can degrade on; it is not an auth failure.
func TestRememberTokens_Issue_StorageFailure(t *testing.T) {
	// Arrange
	manager, storage := newRememberFixture(time.Hour)
	storage.tokenCreateErr = errors.New("disk full")

	// Act
	_, err := manager.Issue(context.Background(), "1")

	// Assert
	if err == nil {
		t.Fatal("Issue() should fail when persistence fails")
	}
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken) {
		t.Errorf("Issue() storage failure mapped to auth error: %v", err)
	}
}

// Requirement: RevokeAll removes every outstanding token for the user
// and reports the count.
func TestRememberTokens_RevokeAll(t *testing.T) {
	// Arrange
	manager, storage := newRememberFixture(time.Hour)
	storage.AddUser(&User{ID: "1", Email: "a@x.com", Role: RoleCustomer, Status: StatusActive})
	storage.AddUser(&User{ID: "2", Email: "b@x.com", Role: RoleStaff, Status: StatusActive})
	first, _ := manager.Issue(context.Background(), "1")
	second, _ := manager.Issue(context.Background(), "1")
	other, _ := manager.Issue(context.Background(), "2")

	// Act
	count, err := manager.RevokeAll(context.Background(), "1")

	// Assert
	if err != nil {
		t.Fatalf("RevokeAll() error = %v", err)
	}
	if count != 2 {
		t.Errorf("RevokeAll() count = %d, want 2", count)
	}
	for _, token := range []string{first, second} {
		if _, err := manager.Validate(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate() after RevokeAll error = %v, want ErrInvalidToken", err)
		}
	}
	if _, err := manager.Validate(context.Background(), other); err != nil {
		t.Errorf("other user's token should survive, Validate() error = %v", err)
	}
}

// Requirement: issued cookies carry the hardening attributes and the
// expired variant matches them with a lifetime in the past.
func TestRememberTokens_Cookies(t *testing.T) {
	manager, _ := newRememberFixture(30 * 24 * time.Hour)

	cookie := manager.Cookie("opaque-value")
	if cookie.Name != "remember_token" || cookie.Value != "opaque-value" {
		t.Errorf("Cookie() = %+v", cookie)
	}
	if !cookie.Secure || !cookie.HTTPOnly || cookie.SameSite != "Strict" {
		t.Errorf("Cookie() missing hardening attributes: %+v", cookie)
	}
	if cookie.MaxAge != int((30 * 24 * time.Hour).Seconds()) {
		t.Errorf("Cookie() MaxAge = %d", cookie.MaxAge)
	}

	expired := manager.ExpiredCookie()
	if expired.Value != "" || expired.MaxAge >= 0 || !expired.Expires.Before(time.Now()) {
		t.Errorf("ExpiredCookie() = %+v", expired)
	}
	if expired.Path != cookie.Path || expired.Secure != cookie.Secure || expired.SameSite != cookie.SameSite {
		t.Error("ExpiredCookie() attributes must match the issue-time cookie")
	}
}
