// Package questions synchronises buyer questions from the marketplace and
// submits seller answers back to it.
package questions

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/marketplace"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

type marketplaceClient interface {
	SearchUnansweredQuestions(ctx context.Context, sellerID string, limit int) ([]marketplace.Question, error)
	GetItem(ctx context.Context, itemID string) (*marketplace.Item, error)
	PostAnswer(ctx context.Context, questionID int64, text string) error
}

type productRepo interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Product, error)
}

type questionRepo interface {
	Create(ctx context.Context, q *domain.Question) (*domain.Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	GetByExternalID(ctx context.Context, externalID int64) (*domain.Question, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuestionStatus) error
}

type answerRepo interface {
	Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config holds the seller account and fan-out limits.
type Config struct {
	SellerID         string
	SearchLimit      int
	TitleConcurrency int
	MaxBatchSize     int
}

// Service implements question synchronisation and answer submission.
type Service struct {
	log       *slog.Logger
	market    marketplaceClient
	products  productRepo
	questions questionRepo
	answers   answerRepo
	tx        txManager
	cfg       Config
}

// NewService creates a new questions service.
func NewService(
	logger *slog.Logger,
	market marketplaceClient,
	products productRepo,
	questions questionRepo,
	answers answerRepo,
	tx txManager,
	cfg Config,
) *Service {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 100
	}
	if cfg.TitleConcurrency <= 0 {
		cfg.TitleConcurrency = 8
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 50
	}
	return &Service{
		log:       logger.With("service", "questions"),
		market:    market,
		products:  products,
		questions: questions,
		answers:   answers,
		tx:        tx,
		cfg:       cfg,
	}
}
