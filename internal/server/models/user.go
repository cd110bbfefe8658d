// Package models holds the persistent entities of the gallery server.
package models

import "time"

// User is an identity record. PasswordDigest stores the one-way digest of the
// password, never the plaintext.
type User struct {
	ID             int64
	Email          string
	PasswordDigest string
	FirstName      string
	LastName       string
	NickName       string
	CreatedAt      time.Time
}
