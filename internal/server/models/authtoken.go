package models

import "time"

// AuthToken binds an opaque bearer token string to its owning user. A token
// resolves to exactly one user until its row is deleted; there is no expiry.
type AuthToken struct {
	ID        int64
	Token     string
	UserID    int64
	CreatedAt time.Time
}
