package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role разделяет два типа аккаунтов портала.
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleSeeker    Role = "seeker"
)

func (r Role) Valid() bool { return r == RoleRecruiter || r == RoleSeeker }

// User is a domain entity representing a portal account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
