package auth

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator_UnknownFormat(t *testing.T) {
	_, err := NewTokenGenerator("sequential")
	require.Error(t, err)
}

func TestGenerate_URLSafe(t *testing.T) {
	g, err := NewTokenGenerator(TokenFormatURLSafe)
	require.NoError(t, err)

	token, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, token, base64.RawURLEncoding.EncodedLen(tokenBytes))

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err, "token must be valid URL-safe base64")
	require.Len(t, decoded, tokenBytes)
}

func TestGenerate_UUID(t *testing.T) {
	g, err := NewTokenGenerator(TokenFormatUUID)
	require.NoError(t, err)

	token, err := g.Generate()
	require.NoError(t, err)
	_, err = uuid.Parse(token)
	require.NoError(t, err)
}

func TestGenerate_NoObviousRepeats(t *testing.T) {
	g, err := NewTokenGenerator(TokenFormatURLSafe)
	require.NoError(t, err)

	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		token, err := g.Generate()
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token generated")
		seen[token] = struct{}{}
	}
}
