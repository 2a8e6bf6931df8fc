package bantay

import (
	"time"

	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/pkg/crypto"
)

// interfaces
type (
	AuthStorage = core.AuthStorage
	Cache       = core.Cache

	HTTPAdapter = core.HTTPAdapter

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Bantay         = core.Bantay
	Config         = core.Config
	SessionConfig  = core.SessionConfig
	RememberConfig = core.RememberConfig
	CacheConfig    = core.CacheConfig
)

type (
	User          = core.User
	UserView      = core.UserView
	Role          = core.Role
	Status        = core.Status
	RememberToken = core.RememberToken
	Session       = core.Session
	SessionRecord = core.SessionRecord
	SessionData   = core.SessionData
	Cookie        = core.Cookie
	CacheStats    = core.CacheStats
)

const (
	RoleAdmin    = core.RoleAdmin
	RoleStaff    = core.RoleStaff
	RoleCustomer = core.RoleCustomer

	StatusActive    = core.StatusActive
	StatusSuspended = core.StatusSuspended
)

const defaultBasePath = "/api/auth"

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache      = core.NewInMemoryCache
	NewArgon2             = crypto.NewArgon2
	DefaultSessionConfig  = core.DefaultSessionConfig
	DefaultRememberConfig = core.DefaultRememberConfig
	ParseRole             = core.ParseRole
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrAccountInactive    = core.ErrAccountInactive
	ErrUserNotFound       = core.ErrUserNotFound
)

var (
	ErrInvalidToken    = core.ErrInvalidToken
	ErrTokenNotFound   = core.ErrTokenNotFound
	ErrSessionNotFound = core.ErrSessionNotFound
	ErrCacheNotFound   = core.ErrCacheNotFound
)

var (
	ErrEmailRequired    = core.ErrEmailRequired
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrUnknownRole      = core.ErrUnknownRole
)

var (
	ErrDBAdapterRequired   = core.ErrDBAdapterRequired
	ErrHTTPAdapterRequired = core.ErrHTTPAdapterRequired
)

// New assembles the authentication core, applies defaults, and lets the
// HTTP adapter register its routes.
func New(config Config) (*Bantay, error) {
	if config.Database == nil {
		return nil, ErrDBAdapterRequired
	}
	if config.HTTP == nil {
		return nil, ErrHTTPAdapterRequired
	}

	// Set Defaults

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.DisableCache {
		cacheAdapter = NewInMemoryCache(CacheConfig{
			TTL:     5 * time.Minute,
			MaxSize: 500,
		})
	}

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		defaults := DefaultSessionConfig()
		sessionConfig = &defaults
	}

	rememberConfig := config.RememberConfig
	if rememberConfig == nil {
		defaults := DefaultRememberConfig()
		rememberConfig = &defaults
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	b := &Bantay{
		Verifier:       core.NewVerifier(config.Database, passwordHasher),
		Sessions:       core.NewSessionManager(*sessionConfig, config.Database, cacheAdapter),
		RememberTokens: core.NewRememberTokenManager(*rememberConfig, config.Database),
		BasePath:       basePath,
	}

	if err := config.HTTP.RegisterRoutes(b); err != nil {
		return nil, err
	}

	return b, nil
}
