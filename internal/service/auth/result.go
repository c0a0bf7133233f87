package auth

import (
	"time"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}
