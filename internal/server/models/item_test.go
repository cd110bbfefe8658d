package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeImages_Empty(t *testing.T) {
	require.Equal(t, "[]", EncodeImages(nil))
	require.Equal(t, "[]", EncodeImages([]string{}))
}

func TestImages_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		images []string
	}{
		{"empty", []string{}},
		{"single", []string{"covers/1.png"}},
		{"ordered", []string{"a.png", "b.png", "c.png"}},
		{"unicode and spaces", []string{"меч и щит.jpg", "two words.png"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeImages(EncodeImages(tt.images))
			require.Equal(t, tt.images, got)
		})
	}
}

func TestDecodeImages_Malformed(t *testing.T) {
	require.Equal(t, []string{}, DecodeImages(""))
	require.Equal(t, []string{}, DecodeImages("not json"))
	require.Equal(t, []string{}, DecodeImages(`{"a":1}`))
	require.Equal(t, []string{}, DecodeImages("null"))
}
