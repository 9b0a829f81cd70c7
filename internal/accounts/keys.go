package accounts

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations is the PBKDF2 work factor. Changing it on an
// existing database invalidates stored hashes, so it only moves for
// fresh deployments and fast test setups.
const DefaultIterations = 260000

const (
	saltBytes = 16
	keyBytes  = 32
	hashBytes = 32
)

// newAPIKey returns a fresh bearer token: 32 random bytes, URL-safe
// base64 without padding (43 characters, 256 bits of entropy).
func newAPIKey() (string, error) {
	b := make([]byte, keyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// newSalt returns a per-account salt as a hex string.
func newSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashPassword derives the stored hash with PBKDF2-SHA256. The salt's
// hex string feeds the derivation as-is; decoding it would change every
// stored hash.
func hashPassword(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, hashBytes, sha256.New)
	return hex.EncodeToString(key)
}
