package domain

import "time"

// User represents a registered account. The password hash never leaves
// the server; it is excluded from every JSON payload.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
