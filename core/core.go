package core

import (
	"github.com/lborres/bantay/pkg/crypto"
)

// Config assembles the library. Database and HTTP adapters are
// required; everything else has defaults.
type Config struct {
	Database AuthStorage

	HTTP HTTPAdapter

	// Optional config
	CacheAdapter   Cache
	DisableCache   bool
	SessionConfig  *SessionConfig
	RememberConfig *RememberConfig
	PasswordHasher crypto.PasswordHandler
	BasePath       string
}

// Bantay is the assembled authentication core handed to HTTP adapters.
type Bantay struct {
	Verifier       *Verifier
	Sessions       *SessionManager
	RememberTokens *RememberTokenManager
	BasePath       string
}

// HTTPAdapter wires the assembled core into a web framework.
type HTTPAdapter interface {
	RegisterRoutes(b *Bantay) error
}
