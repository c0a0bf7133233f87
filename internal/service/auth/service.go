package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// tokenManager defines the session token interface needed by auth service.
type tokenManager interface {
	GenerateToken(userID uuid.UUID, role string) (string, time.Time, error)
	ValidateToken(token string) (uuid.UUID, string, error)
}

// Service implements registration, login and session verification.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenManager
	cfg    config.AuthConfig

	// decoy is compared against on unknown emails so that a miss costs the
	// same bcrypt work as a wrong password.
	decoyOnce sync.Once
	decoy     []byte
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		tokens: tokens,
		cfg:    cfg,
	}
}
