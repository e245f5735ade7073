package domain

import "time"

type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string // argon2id PHC string, never rendered
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
