package auth

import "time"

// User represents a registered account
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Gender       string    `json:"gender"`
	CreatedAt    time.Time `json:"created_at"`
}
