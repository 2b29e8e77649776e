// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash is the argon2id hash in PHC format and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
