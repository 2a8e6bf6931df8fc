package bantay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lborres/bantay/core"
)

// dummy HTTP Adapter
type dummyHTTP struct {
	registered *Bantay
}

func (d *dummyHTTP) RegisterRoutes(b *Bantay) error {
	d.registered = b
	return nil
}

type failingHTTP struct{}

func (f *failingHTTP) RegisterRoutes(b *Bantay) error {
	return errors.New("route conflict")
}

func TestNewShouldRequireDatabaseAdapter(t *testing.T) {
	_, err := New(Config{HTTP: &dummyHTTP{}})
	if !errors.Is(err, ErrDBAdapterRequired) {
		t.Fatalf("expected ErrDBAdapterRequired, got %v", err)
	}
}

func TestNewShouldRequireHTTPAdapter(t *testing.T) {
	_, err := New(Config{Database: core.NewFakeAuthStorage()})
	if !errors.Is(err, ErrHTTPAdapterRequired) {
		t.Fatalf("expected ErrHTTPAdapterRequired, got %v", err)
	}
}

func TestNewShouldPropagateRouteRegistrationFailure(t *testing.T) {
	_, err := New(Config{
		Database: core.NewFakeAuthStorage(),
		HTTP:     &failingHTTP{},
	})
	if err == nil {
		t.Fatal("expected route registration error")
	}
}

func TestNewShouldAssembleManagersWithDefaults(t *testing.T) {
	adapter := &dummyHTTP{}

	b, err := New(Config{
		Database: core.NewFakeAuthStorage(),
		HTTP:     adapter,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if b.Verifier == nil || b.Sessions == nil || b.RememberTokens == nil {
		t.Fatal("New should wire all three managers")
	}
	if b.BasePath != "/api/auth" {
		t.Errorf("BasePath = %q, want /api/auth", b.BasePath)
	}
	if adapter.registered != b {
		t.Error("HTTP adapter should receive the assembled instance")
	}
}

func TestNewShouldNotUseCacheWhenDisableCacheTrue(t *testing.T) {
	storage := core.NewFakeAuthStorage()

	b, err := New(Config{
		Database:      storage,
		HTTP:          &dummyHTTP{},
		DisableCache:  true,
		SessionConfig: &SessionConfig{CookieName: "session_token", MaxAge: time.Hour, Path: "/", Secure: true, SameSite: "Strict"},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	sess, err := b.Sessions.Establish(ctx, nil, &UserView{ID: "1", Role: RoleCustomer})
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	// destroy through the store, then present the token again: with no
	// cache the manager must see the record is gone
	if err := b.Sessions.Destroy(ctx, sess); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	revived, err := b.Sessions.Start(ctx, sess.Token())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if revived.IsAuthenticated() {
		t.Fatal("destroyed session must not resolve when cache is disabled")
	}
}

// Requirement: full login round trip through the assembled facade —
// authenticate, establish, remember, restore, logout.
func TestBantayEndToEnd(t *testing.T) {
	storage := core.NewFakeAuthStorage()
	passwords := NewArgon2()
	hash, err := passwords.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	storage.AddUser(&User{
		ID: "1", Name: "Alice", Email: "a@x.com",
		PasswordHash: hash, Role: RoleCustomer, Status: StatusActive,
	})

	b, err := New(Config{
		Database:       storage,
		HTTP:           &dummyHTTP{},
		PasswordHasher: passwords,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	// primary login
	view, err := b.Verifier.Authenticate(ctx, "a@x.com", "hunter2", RoleCustomer)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	sess, err := b.Sessions.Establish(ctx, nil, view)
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("session should be authenticated after login")
	}

	// remember-me issue and restore
	token, err := b.RememberTokens.Issue(ctx, view.ID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	restored, err := b.RememberTokens.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if restored.ID != "1" {
		t.Errorf("restored user id = %q, want 1", restored.ID)
	}

	// logout
	if err := b.RememberTokens.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if err := b.Sessions.Destroy(ctx, sess); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if _, err := b.RememberTokens.Validate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Validate after revoke = %v, want ErrInvalidToken", err)
	}
}
