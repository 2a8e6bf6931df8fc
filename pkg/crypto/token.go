package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
)

const (
	// DefaultTokenLength is the raw byte length of generated tokens.
	// 32 bytes = 256 bits of entropy.
	DefaultTokenLength = 32
)

// TokenPair couples the opaque value handed to the client with the
// digest kept in storage. The raw token never touches the database.
type TokenPair struct {
	Token string // value returned to client
	Hash  string // value in storage
}

// GenerateTokenPair creates a crypto-random opaque token and its
// storage digest. A byteLength <= 0 falls back to DefaultTokenLength.
func GenerateTokenPair(byteLength int) (*TokenPair, error) {
	if byteLength <= 0 {
		byteLength = DefaultTokenLength
	}

	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	token := base64.RawURLEncoding.EncodeToString(raw)

	return &TokenPair{
		Token: token,
		Hash:  HashToken(token),
	}, nil
}

// VerifyToken checks a presented token against a stored digest using a
// constant-time comparison.
func VerifyToken(token, storedHash string) (bool, error) {
	if token == "" || storedHash == "" {
		return false, errors.New("token and hash cannot be empty")
	}

	tokenHash := HashToken(token)

	return subtle.ConstantTimeCompare([]byte(tokenHash), []byte(storedHash)) == 1, nil
}

// HashToken returns the hex-encoded sha256 digest of a token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
