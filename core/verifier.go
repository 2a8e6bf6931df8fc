package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/lborres/bantay/pkg/crypto"
)

// Verifier checks submitted credentials against the store. It has no
// side effects beyond the read; outcome logging belongs to the caller.
type Verifier struct {
	store     UserStore
	passwords crypto.PasswordHandler
}

func NewVerifier(store UserStore, passwords crypto.PasswordHandler) *Verifier {
	return &Verifier{
		store:     store,
		passwords: passwords,
	}
}

// Authenticate verifies an (email, password, role) triple and returns
// the identity view with the password hash stripped.
//
// "No matching user" and "wrong password" both come back as
// ErrInvalidCredentials. An account whose status is anything but active
// fails with *AccountInactiveError carrying that status. Storage
// failures are fatal to the attempt and returned wrapped.
func (v *Verifier) Authenticate(ctx context.Context, email, password string, role Role) (*UserView, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !role.Valid() {
		return nil, ErrUnknownRole
	}

	user, err := v.store.GetUserByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	valid, err := v.passwords.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if !user.Status.Active() {
		return nil, &AccountInactiveError{Status: user.Status}
	}

	return user.View(), nil
}
