// Package models holds the backend's persistence models.
package models

import "time"

// User is a registered identity. PasswordHash is the hex SHA-256 digest of
// the user's 8-digit PIN.
type User struct {
	ID           string
	Nickname     string
	PasswordHash string
	CreatedAt    time.Time
}
