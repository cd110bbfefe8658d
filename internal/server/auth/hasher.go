// Package auth implements the credential primitives of the server: password
// digests and opaque bearer-token generation.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash scheme names accepted in configuration.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher turns a plaintext password into a stored digest and verifies
// candidates against it.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(digest string, plaintext string) bool
}

// NewHasher returns the Hasher for a configured scheme name.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeBcrypt:
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// SHA256Hasher reproduces the historical digest scheme: a hex-encoded SHA-256
// of the plaintext alone. It is deterministic and unsalted, so two users with
// the same password share a digest. Kept for compatibility with existing
// rows; prefer the bcrypt scheme for new deployments.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(digest string, plaintext string) bool {
	candidate, _ := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(candidate)) == 1
}

// BcryptHasher stores salted bcrypt digests. The salt is embedded in the
// digest string, so the users table needs no extra column.
type BcryptHasher struct{}

func (BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Verify(digest string, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
