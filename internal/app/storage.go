package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres"
	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres/answer"
	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres/credential"
	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres/product"
	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres/question"
	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres/user"
	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/redis"
	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

type productStore interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type questionStore interface {
	Create(ctx context.Context, q *domain.Question) (*domain.Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	GetByExternalID(ctx context.Context, externalID int64) (*domain.Question, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuestionStatus) error
}

type answerStore interface {
	Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]domain.Answer, error)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type credentialStore interface {
	GetRefreshToken(ctx context.Context) (string, error)
	SaveRefreshToken(ctx context.Context, token string) error
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// storage bundles the repositories of the selected driver.
type storage struct {
	products    productStore
	questions   questionStore
	answers     answerStore
	users       userStore
	credentials credentialStore
	tx          txRunner
	pinger      pinger
	close       func()
}

// openStorage connects the driver named in cfg.Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Database, logger)
	case config.DriverRedis:
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to redis", slog.String("addr", cfg.Redis.Addr))
		return newRedisStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*storage, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &storage{
		products:    product.New(pool),
		questions:   question.New(pool),
		answers:     answer.New(pool),
		users:       user.New(pool),
		credentials: credential.New(pool),
		tx:          postgres.NewTxManager(pool),
		pinger:      pool,
		close:       pool.Close,
	}, nil
}

func newRedisStorage(client *goredis.Client) *storage {
	return &storage{
		products:    redis.NewProductRepo(client),
		questions:   redis.NewQuestionRepo(client),
		answers:     redis.NewAnswerRepo(client),
		users:       redis.NewUserRepo(client),
		credentials: redis.NewCredentialRepo(client),
		tx:          redis.TxManager{},
		pinger:      redis.Pinger{Client: client},
		close:       func() { _ = client.Close() },
	}
}
