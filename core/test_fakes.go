package core

import (
	"context"
	"strings"
	"sync"
	"time"
)

// FakeAuthStorage is a test-only, map-backed implementation of
// AuthStorage. Error fields allow behavior injection per operation.
type FakeAuthStorage struct {
	mu       sync.RWMutex
	users    map[string]*User          // key: user ID
	tokens   map[string]*RememberToken // key: token hash
	sessions map[string]*SessionRecord // key: token hash

	userErr        error
	tokenCreateErr error
	tokenGetErr    error
	tokenDeleteErr error
	sessionSaveErr error
	sessionGetErr  error
	sessionDelErr  error
}

func NewFakeAuthStorage() *FakeAuthStorage {
	return &FakeAuthStorage{
		users:    make(map[string]*User),
		tokens:   make(map[string]*RememberToken),
		sessions: make(map[string]*SessionRecord),
	}
}

func (f *FakeAuthStorage) AddUser(u *User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
}

// UserStore

func (f *FakeAuthStorage) GetUserByID(ctx context.Context, id string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.userErr != nil {
		return nil, f.userErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *FakeAuthStorage) GetUserByEmailAndRole(ctx context.Context, email string, role Role) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.userErr != nil {
		return nil, f.userErr
	}
	var matches []*User
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) && u.Role == role {
			matches = append(matches, u)
		}
	}
	// zero and multiple matches are the same non-answer
	if len(matches) != 1 {
		return nil, ErrUserNotFound
	}
	return matches[0], nil
}

// RememberTokenStore

func (f *FakeAuthStorage) CreateRememberToken(ctx context.Context, t *RememberToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokenCreateErr != nil {
		return f.tokenCreateErr
	}
	f.tokens[t.TokenHash] = t
	return nil
}

func (f *FakeAuthStorage) GetRememberTokenUser(ctx context.Context, tokenHash string) (*RememberToken, *User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.tokenGetErr != nil {
		return nil, nil, f.tokenGetErr
	}
	t, ok := f.tokens[tokenHash]
	if !ok {
		return nil, nil, ErrTokenNotFound
	}
	u, ok := f.users[t.UserID]
	if !ok {
		return nil, nil, ErrTokenNotFound
	}
	return t, u, nil
}

func (f *FakeAuthStorage) DeleteRememberToken(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokenDeleteErr != nil {
		return f.tokenDeleteErr
	}
	delete(f.tokens, tokenHash)
	return nil
}

func (f *FakeAuthStorage) DeleteUserRememberTokens(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for hash, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, hash)
			count++
		}
	}
	return count, nil
}

func (f *FakeAuthStorage) DeleteExpiredRememberTokens(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	now := time.Now()
	for hash, t := range f.tokens {
		if now.After(t.ExpiresAt) {
			delete(f.tokens, hash)
			count++
		}
	}
	return count, nil
}

// SessionStore

func (f *FakeAuthStorage) SaveSession(ctx context.Context, s *SessionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessionSaveErr != nil {
		return f.sessionSaveErr
	}
	f.sessions[s.TokenHash] = s
	return nil
}

func (f *FakeAuthStorage) GetSessionByHash(ctx context.Context, tokenHash string) (*SessionRecord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.sessionGetErr != nil {
		return nil, f.sessionGetErr
	}
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (f *FakeAuthStorage) DeleteSessionByHash(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessionDelErr != nil {
		return f.sessionDelErr
	}
	if _, ok := f.sessions[tokenHash]; !ok {
		return ErrSessionNotFound
	}
	delete(f.sessions, tokenHash)
	return nil
}

func (f *FakeAuthStorage) DeleteExpiredSessions(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	now := time.Now()
	for hash, s := range f.sessions {
		if now.After(s.ExpiresAt) {
			delete(f.sessions, hash)
			count++
		}
	}
	return count, nil
}

// SessionCount reports how many session records the store holds.
func (f *FakeAuthStorage) SessionCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

var _ AuthStorage = (*FakeAuthStorage)(nil)
