package questions

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/marketplace"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

var (
	_ marketplaceClient = &marketplaceClientMock{}
	_ productRepo       = &productRepoMock{}
	_ questionRepo      = &questionRepoMock{}
	_ answerRepo        = &answerRepoMock{}
	_ txManager         = &txManagerMock{}
)

type marketplaceClientMock struct {
	SearchUnansweredQuestionsFunc func(ctx context.Context, sellerID string, limit int) ([]marketplace.Question, error)
	GetItemFunc                   func(ctx context.Context, itemID string) (*marketplace.Item, error)
	PostAnswerFunc                func(ctx context.Context, questionID int64, text string) error

	calls struct {
		SearchUnansweredQuestions []struct {
			SellerID string
			Limit    int
		}
		GetItem []struct {
			ItemID string
		}
		PostAnswer []struct {
			QuestionID int64
			Text       string
		}
	}
	lockSearchUnansweredQuestions sync.RWMutex
	lockGetItem                   sync.RWMutex
	lockPostAnswer                sync.RWMutex
}

func (mock *marketplaceClientMock) SearchUnansweredQuestions(ctx context.Context, sellerID string, limit int) ([]marketplace.Question, error) {
	if mock.SearchUnansweredQuestionsFunc == nil {
		panic("marketplaceClientMock.SearchUnansweredQuestionsFunc: method is nil but marketplaceClient.SearchUnansweredQuestions was just called")
	}
	mock.lockSearchUnansweredQuestions.Lock()
	mock.calls.SearchUnansweredQuestions = append(mock.calls.SearchUnansweredQuestions, struct {
		SellerID string
		Limit    int
	}{SellerID: sellerID, Limit: limit})
	mock.lockSearchUnansweredQuestions.Unlock()
	return mock.SearchUnansweredQuestionsFunc(ctx, sellerID, limit)
}

func (mock *marketplaceClientMock) SearchUnansweredQuestionsCalls() []struct {
	SellerID string
	Limit    int
} {
	mock.lockSearchUnansweredQuestions.RLock()
	calls := mock.calls.SearchUnansweredQuestions
	mock.lockSearchUnansweredQuestions.RUnlock()
	return calls
}

func (mock *marketplaceClientMock) GetItem(ctx context.Context, itemID string) (*marketplace.Item, error) {
	if mock.GetItemFunc == nil {
		panic("marketplaceClientMock.GetItemFunc: method is nil but marketplaceClient.GetItem was just called")
	}
	mock.lockGetItem.Lock()
	mock.calls.GetItem = append(mock.calls.GetItem, struct {
		ItemID string
	}{ItemID: itemID})
	mock.lockGetItem.Unlock()
	return mock.GetItemFunc(ctx, itemID)
}

func (mock *marketplaceClientMock) GetItemCalls() []struct {
	ItemID string
} {
	mock.lockGetItem.RLock()
	calls := mock.calls.GetItem
	mock.lockGetItem.RUnlock()
	return calls
}

func (mock *marketplaceClientMock) PostAnswer(ctx context.Context, questionID int64, text string) error {
	if mock.PostAnswerFunc == nil {
		panic("marketplaceClientMock.PostAnswerFunc: method is nil but marketplaceClient.PostAnswer was just called")
	}
	mock.lockPostAnswer.Lock()
	mock.calls.PostAnswer = append(mock.calls.PostAnswer, struct {
		QuestionID int64
		Text       string
	}{QuestionID: questionID, Text: text})
	mock.lockPostAnswer.Unlock()
	return mock.PostAnswerFunc(ctx, questionID, text)
}

func (mock *marketplaceClientMock) PostAnswerCalls() []struct {
	QuestionID int64
	Text       string
} {
	mock.lockPostAnswer.RLock()
	calls := mock.calls.PostAnswer
	mock.lockPostAnswer.RUnlock()
	return calls
}

type productRepoMock struct {
	CreateFunc          func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByExternalIDFunc func(ctx context.Context, externalID string) (*domain.Product, error)

	calls struct {
		Create []struct {
			P *domain.Product
		}
		GetByExternalID []struct {
			ExternalID string
		}
	}
	lockCreate          sync.RWMutex
	lockGetByExternalID sync.RWMutex
}

func (mock *productRepoMock) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if mock.CreateFunc == nil {
		panic("productRepoMock.CreateFunc: method is nil but productRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		P *domain.Product
	}{P: p})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *productRepoMock) CreateCalls() []struct {
	P *domain.Product
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *productRepoMock) GetByExternalID(ctx context.Context, externalID string) (*domain.Product, error) {
	if mock.GetByExternalIDFunc == nil {
		panic("productRepoMock.GetByExternalIDFunc: method is nil but productRepo.GetByExternalID was just called")
	}
	mock.lockGetByExternalID.Lock()
	mock.calls.GetByExternalID = append(mock.calls.GetByExternalID, struct {
		ExternalID string
	}{ExternalID: externalID})
	mock.lockGetByExternalID.Unlock()
	return mock.GetByExternalIDFunc(ctx, externalID)
}

type questionRepoMock struct {
	CreateFunc          func(ctx context.Context, q *domain.Question) (*domain.Question, error)
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	GetByExternalIDFunc func(ctx context.Context, externalID int64) (*domain.Question, error)
	UpdateStatusFunc    func(ctx context.Context, id uuid.UUID, status domain.QuestionStatus) error

	calls struct {
		Create []struct {
			Q *domain.Question
		}
		GetByID []struct {
			ID uuid.UUID
		}
		GetByExternalID []struct {
			ExternalID int64
		}
		UpdateStatus []struct {
			ID     uuid.UUID
			Status domain.QuestionStatus
		}
	}
	lockCreate          sync.RWMutex
	lockGetByID         sync.RWMutex
	lockGetByExternalID sync.RWMutex
	lockUpdateStatus    sync.RWMutex
}

func (mock *questionRepoMock) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	if mock.CreateFunc == nil {
		panic("questionRepoMock.CreateFunc: method is nil but questionRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Q *domain.Question
	}{Q: q})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, q)
}

func (mock *questionRepoMock) CreateCalls() []struct {
	Q *domain.Question
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *questionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if mock.GetByIDFunc == nil {
		panic("questionRepoMock.GetByIDFunc: method is nil but questionRepo.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		ID uuid.UUID
	}{ID: id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *questionRepoMock) GetByExternalID(ctx context.Context, externalID int64) (*domain.Question, error) {
	if mock.GetByExternalIDFunc == nil {
		panic("questionRepoMock.GetByExternalIDFunc: method is nil but questionRepo.GetByExternalID was just called")
	}
	mock.lockGetByExternalID.Lock()
	mock.calls.GetByExternalID = append(mock.calls.GetByExternalID, struct {
		ExternalID int64
	}{ExternalID: externalID})
	mock.lockGetByExternalID.Unlock()
	return mock.GetByExternalIDFunc(ctx, externalID)
}

func (mock *questionRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuestionStatus) error {
	if mock.UpdateStatusFunc == nil {
		panic("questionRepoMock.UpdateStatusFunc: method is nil but questionRepo.UpdateStatus was just called")
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, struct {
		ID     uuid.UUID
		Status domain.QuestionStatus
	}{ID: id, Status: status})
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status)
}

func (mock *questionRepoMock) UpdateStatusCalls() []struct {
	ID     uuid.UUID
	Status domain.QuestionStatus
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

type answerRepoMock struct {
	CreateFunc func(ctx context.Context, a *domain.Answer) (*domain.Answer, error)

	calls struct {
		Create []struct {
			A *domain.Answer
		}
	}
	lockCreate sync.RWMutex
}

func (mock *answerRepoMock) Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	if mock.CreateFunc == nil {
		panic("answerRepoMock.CreateFunc: method is nil but answerRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		A *domain.Answer
	}{A: a})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *answerRepoMock) CreateCalls() []struct {
	A *domain.Answer
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}
