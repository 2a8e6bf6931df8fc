package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lborres/bantay/pkg/crypto"
)

// RememberConfig controls remember-token lifetime and the cookie
// attributes handed to the transport layer.
type RememberConfig struct {
	CookieName string
	TTL        time.Duration
	Path       string
	Domain     string
	Secure     bool
	SameSite   string
}

func DefaultRememberConfig() RememberConfig {
	return RememberConfig{
		CookieName: "remember_token",
		TTL:        30 * 24 * time.Hour,
		Path:       "/",
		Secure:     true,
		SameSite:   "Strict",
	}
}

// RememberTokenManager issues, validates and revokes the long-lived
// opaque tokens behind "remember me". Tokens carry a fixed absolute
// expiry and are not rotated on use.
type RememberTokenManager struct {
	config RememberConfig
	store  RememberTokenStore
}

func NewRememberTokenManager(config RememberConfig, store RememberTokenStore) *RememberTokenManager {
	return &RememberTokenManager{config: config, store: store}
}

// Issue creates a 256-bit opaque token bound to userID and persists its
// digest with an absolute expiry. The raw token is returned exactly
// once; only its hash is stored.
//
// A persistence failure is returned wrapped. Callers must treat it as
// "remember-me unavailable", never as an authentication failure.
func (m *RememberTokenManager) Issue(ctx context.Context, userID string) (string, error) {
	pair, err := crypto.GenerateTokenPair(crypto.DefaultTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate remember token: %w", err)
	}

	now := time.Now()
	record := &RememberToken{
		TokenHash: pair.Hash,
		UserID:    userID,
		ExpiresAt: now.Add(m.config.TTL),
		CreatedAt: now,
	}

	if err := m.store.CreateRememberToken(ctx, record); err != nil {
		return "", fmt.Errorf("failed to persist remember token: %w", err)
	}

	return pair.Token, nil
}

// Validate resolves a presented token to its owner's identity view.
//
// Absent, expired, and inactive-owner tokens all fail with
// ErrInvalidToken; nothing else is surfaced.
func (m *RememberTokenManager) Validate(ctx context.Context, token string) (*UserView, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	record, user, err := m.store.GetRememberTokenUser(ctx, crypto.HashToken(token))
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up remember token: %w", err)
	}

	if time.Now().After(record.ExpiresAt) {
		return nil, ErrInvalidToken
	}
	if !user.Status.Active() {
		return nil, ErrInvalidToken
	}

	return user.View(), nil
}

// Revoke deletes the token row if present. Revoking an absent or
// already-expired token is not an error.
func (m *RememberTokenManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := m.store.DeleteRememberToken(ctx, crypto.HashToken(token))
	if err != nil && !errors.Is(err, ErrTokenNotFound) {
		return fmt.Errorf("failed to delete remember token: %w", err)
	}
	return nil
}

// RevokeAll deletes every outstanding token for a user, e.g. after a
// password change.
func (m *RememberTokenManager) RevokeAll(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrUserNotFound
	}

	count, err := m.store.DeleteUserRememberTokens(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete remember tokens: %w", err)
	}
	return count, nil
}

// Cookie returns the cookie values for a freshly issued token.
func (m *RememberTokenManager) Cookie(token string) *Cookie {
	return &Cookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     m.config.Path,
		Domain:   m.config.Domain,
		MaxAge:   int(m.config.TTL.Seconds()),
		Expires:  time.Now().Add(m.config.TTL),
		Secure:   m.config.Secure,
		HTTPOnly: true,
		SameSite: m.config.SameSite,
	}
}

// ExpiredCookie returns a cookie matching the issue-time attributes
// with a lifetime in the past, so browsers actually drop it.
func (m *RememberTokenManager) ExpiredCookie() *Cookie {
	return &Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     m.config.Path,
		Domain:   m.config.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.config.Secure,
		HTTPOnly: true,
		SameSite: m.config.SameSite,
	}
}

// CookieName exposes the configured cookie key for the transport layer.
func (m *RememberTokenManager) CookieName() string {
	return m.config.CookieName
}
