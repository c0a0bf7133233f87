package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account. Users are created at registration and never
// updated or deleted.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}
