package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// Token format names accepted in configuration. Both produce fixed-length,
// URL-safe opaque strings with no structure leaking the owner; global
// uniqueness is ultimately enforced by the database unique index.
const (
	TokenFormatURLSafe = "urlsafe"
	TokenFormatUUID    = "uuid"
)

// tokenBytes is the entropy of a urlsafe token (256 bits).
const tokenBytes = 32

// TokenGenerator mints opaque bearer-token strings.
type TokenGenerator struct {
	format string
}

// NewTokenGenerator returns a generator for a configured format name.
func NewTokenGenerator(format string) (*TokenGenerator, error) {
	switch format {
	case TokenFormatURLSafe, TokenFormatUUID:
		return &TokenGenerator{format: format}, nil
	default:
		return nil, fmt.Errorf("unknown token format %q", format)
	}
}

// Generate returns a fresh token string.
func (g *TokenGenerator) Generate() (string, error) {
	if g.format == TokenFormatUUID {
		return uuid.NewString(), nil
	}
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
