package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lborres/bantay/pkg/crypto"
)

// SessionConfig controls session lifetime and cookie attributes.
type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	Path       string
	Domain     string
	Secure     bool
	SameSite   string
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName: "session_token",
		MaxAge:     24 * time.Hour,
		Path:       "/",
		Secure:     true,
		SameSite:   "Strict",
	}
}

// Session is the request-scoped handle over one server-side session
// record. It is created by SessionManager.Start and owned by the
// current request; it is not safe for use across concurrent requests.
type Session struct {
	record *SessionRecord
	token  string // raw token for the cookie round trip
}

// Token returns the opaque value the client-side cookie carries.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// IsAuthenticated reports whether the session payload was populated by
// a verified identity.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.record != nil && s.record.LoggedIn
}

// Role returns the role on the active session, or false when no
// authenticated payload is present.
func (s *Session) Role() (Role, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}
	return s.record.Role, true
}

// User returns the identity snapshot held by the session, or nil.
func (s *Session) User() *UserView {
	if !s.IsAuthenticated() {
		return nil
	}
	return &UserView{
		ID:    s.record.UserID,
		Name:  s.record.Name,
		Email: s.record.Email,
		Role:  s.record.Role,
	}
}

// ExpiresAt returns the server-side expiry of the session record.
func (s *Session) ExpiresAt() time.Time {
	if s == nil || s.record == nil {
		return time.Time{}
	}
	return s.record.ExpiresAt
}

// SessionManager owns the session lifecycle: lazy initialization,
// fixation-resistant identifier regeneration, payload population from a
// verified identity, and destruction.
type SessionManager struct {
	config  SessionConfig
	storage SessionStore
	cache   Cache // optional, can be nil if caching is disabled
}

func NewSessionManager(config SessionConfig, storage SessionStore, cache Cache) *SessionManager {
	return &SessionManager{config: config, storage: storage, cache: cache}
}

// Start ensures a session exists for the current request, lazily and
// idempotently.
//
// The store is strict about identifiers: a presented token that matches
// no live record is never adopted, a fresh one is minted instead. A
// live record that has not yet passed the fixation guard gets its
// identifier regenerated exactly once; the Regenerated marker keeps it
// from ever happening again for that session's lifetime.
func (sm *SessionManager) Start(ctx context.Context, presentedToken string) (*Session, error) {
	if presentedToken != "" {
		record, err := sm.lookup(ctx, crypto.HashToken(presentedToken))
		if err == nil && record != nil {
			if time.Now().After(record.ExpiresAt) {
				// expired records are dead; fall through to a fresh session
				_ = sm.discard(ctx, record.TokenHash)
			} else if !record.Regenerated {
				return sm.regenerate(ctx, record)
			} else {
				return &Session{record: record, token: presentedToken}, nil
			}
		}
	}

	return sm.fresh(ctx)
}

// Establish replaces the session with an authenticated one: a newly
// minted identifier carrying the verified identity snapshot. Any
// record that existed before authentication is discarded, so an
// identifier exposed pre-login can never name the authenticated
// session. A nil or destroyed session is fine; initialization ordering
// is enforced here rather than left to the caller.
func (sm *SessionManager) Establish(ctx context.Context, sess *Session, view *UserView) (*Session, error) {
	pair, err := crypto.GenerateTokenPair(crypto.DefaultTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	id, err := crypto.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now()
	record := &SessionRecord{
		ID:          id,
		TokenHash:   pair.Hash,
		UserID:      view.ID,
		Name:        view.Name,
		Email:       view.Email,
		Role:        view.Role,
		LoggedIn:    true,
		Regenerated: true,
		ExpiresAt:   now.Add(sm.config.MaxAge),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if sess != nil && sess.record != nil {
		record.CreatedAt = sess.record.CreatedAt
		if err := sm.discard(ctx, sess.record.TokenHash); err != nil && !errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to drop pre-login session: %w", err)
		}
	}

	if err := sm.storage.SaveSession(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if sm.cache != nil {
		_ = sm.cache.Set(record.TokenHash, record)
	}

	return &Session{record: record, token: pair.Token}, nil
}

// Destroy clears the session payload and removes the server-side
// record. Calling it on a nil or already-destroyed session is a no-op
// beyond cookie clearing, which the transport layer does with
// ExpiredCookie.
func (sm *SessionManager) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil || sess.record == nil {
		return nil
	}

	tokenHash := sess.record.TokenHash
	sess.record = nil
	sess.token = ""

	if sm.cache != nil {
		_ = sm.cache.Delete(tokenHash)
	}

	err := sm.storage.DeleteSessionByHash(ctx, tokenHash)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Cookie returns the session cookie for an active session, or the
// expired variant when there is nothing to carry.
func (sm *SessionManager) Cookie(sess *Session) *Cookie {
	if sess == nil || sess.token == "" {
		return sm.ExpiredCookie()
	}
	return &Cookie{
		Name:     sm.config.CookieName,
		Value:    sess.token,
		Path:     sm.config.Path,
		Domain:   sm.config.Domain,
		MaxAge:   int(sm.config.MaxAge.Seconds()),
		Expires:  sess.ExpiresAt(),
		Secure:   sm.config.Secure,
		HTTPOnly: true,
		SameSite: sm.config.SameSite,
	}
}

// ExpiredCookie returns a cookie with matching attributes and a
// lifetime in the past.
func (sm *SessionManager) ExpiredCookie() *Cookie {
	return &Cookie{
		Name:     sm.config.CookieName,
		Value:    "",
		Path:     sm.config.Path,
		Domain:   sm.config.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   sm.config.Secure,
		HTTPOnly: true,
		SameSite: sm.config.SameSite,
	}
}

// CookieName exposes the configured cookie key for the transport layer.
func (sm *SessionManager) CookieName() string {
	return sm.config.CookieName
}

func (sm *SessionManager) lookup(ctx context.Context, tokenHash string) (*SessionRecord, error) {
	if sm.cache != nil {
		if record, err := sm.cache.Get(tokenHash); err == nil && record != nil {
			return record, nil
		}
		// Cache miss - fall through to storage
	}

	record, err := sm.storage.GetSessionByHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	if sm.cache != nil {
		_ = sm.cache.Set(tokenHash, record)
	}
	return record, nil
}

func (sm *SessionManager) discard(ctx context.Context, tokenHash string) error {
	if sm.cache != nil {
		_ = sm.cache.Delete(tokenHash)
	}
	return sm.storage.DeleteSessionByHash(ctx, tokenHash)
}

// fresh mints a brand-new anonymous session. The identifier is
// generated server-side, so the fixation marker is recorded
// immediately: no client-chosen value was ever trusted.
func (sm *SessionManager) fresh(ctx context.Context) (*Session, error) {
	pair, err := crypto.GenerateTokenPair(crypto.DefaultTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	id, err := crypto.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now()
	record := &SessionRecord{
		ID:          id,
		TokenHash:   pair.Hash,
		Regenerated: true,
		ExpiresAt:   now.Add(sm.config.MaxAge),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := sm.storage.SaveSession(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if sm.cache != nil {
		// We don't fail the request if caching fails
		_ = sm.cache.Set(record.TokenHash, record)
	}

	return &Session{record: record, token: pair.Token}, nil
}

// regenerate replaces the identifier of a live record while carrying
// its payload over, then records the one-time marker.
func (sm *SessionManager) regenerate(ctx context.Context, old *SessionRecord) (*Session, error) {
	pair, err := crypto.GenerateTokenPair(crypto.DefaultTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	id, err := crypto.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now()
	record := &SessionRecord{
		ID:          id,
		TokenHash:   pair.Hash,
		UserID:      old.UserID,
		Name:        old.Name,
		Email:       old.Email,
		Role:        old.Role,
		LoggedIn:    old.LoggedIn,
		Regenerated: true,
		ExpiresAt:   now.Add(sm.config.MaxAge),
		CreatedAt:   old.CreatedAt,
		UpdatedAt:   now,
	}

	if err := sm.storage.SaveSession(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if err := sm.discard(ctx, old.TokenHash); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to drop pre-regeneration session: %w", err)
	}
	if sm.cache != nil {
		_ = sm.cache.Set(record.TokenHash, record)
	}

	return &Session{record: record, token: pair.Token}, nil
}
