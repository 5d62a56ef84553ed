package model

import "time"

// User is a back-office account. PasswordHash is a bcrypt hash and never
// leaves the application layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
