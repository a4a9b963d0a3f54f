package models

import "time"

// Roles a user account can hold. The first account registered in a fresh
// system becomes RoleAdmin; every later account defaults to RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
