package models

import (
	"encoding/json"
	"time"
)

// Item is an ownership-scoped gallery resource. Images holds references
// (storage keys or URLs) and is persisted as a JSON-encoded string list.
type Item struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	CoverImage  string
	Images      []string
	CreatedAt   time.Time
}

// EncodeImages serializes an image reference list for storage.
// A nil or empty list encodes as "[]".
func EncodeImages(images []string) string {
	if len(images) == 0 {
		return "[]"
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeImages parses a stored image list. Malformed or empty input decodes
// as an empty list rather than an error, matching write-side defaults.
func DecodeImages(s string) []string {
	if s == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(s), &images); err != nil {
		return []string{}
	}
	if images == nil {
		return []string{}
	}
	return images
}
