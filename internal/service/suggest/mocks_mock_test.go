package suggest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

var (
	_ questionRepo = &questionRepoMock{}
	_ productRepo  = &productRepoMock{}
	_ answerRepo   = &answerRepoMock{}
	_ completer    = &completerMock{}
)

type questionRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *questionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if mock.GetByIDFunc == nil {
		panic("questionRepoMock.GetByIDFunc: method is nil but questionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

type productRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *productRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if mock.GetByIDFunc == nil {
		panic("productRepoMock.GetByIDFunc: method is nil but productRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

type answerRepoMock struct {
	ListByProductFunc func(ctx context.Context, productID uuid.UUID, limit int) ([]domain.Answer, error)

	calls struct {
		ListByProduct []struct {
			Ctx       context.Context
			ProductID uuid.UUID
			Limit     int
		}
	}
	lockListByProduct sync.RWMutex
}

func (mock *answerRepoMock) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]domain.Answer, error) {
	if mock.ListByProductFunc == nil {
		panic("answerRepoMock.ListByProductFunc: method is nil but answerRepo.ListByProduct was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProductID uuid.UUID
		Limit     int
	}{Ctx: ctx, ProductID: productID, Limit: limit}
	mock.lockListByProduct.Lock()
	mock.calls.ListByProduct = append(mock.calls.ListByProduct, callInfo)
	mock.lockListByProduct.Unlock()
	return mock.ListByProductFunc(ctx, productID, limit)
}

func (mock *answerRepoMock) ListByProductCalls() []struct {
	Ctx       context.Context
	ProductID uuid.UUID
	Limit     int
} {
	mock.lockListByProduct.RLock()
	calls := mock.calls.ListByProduct
	mock.lockListByProduct.RUnlock()
	return calls
}

type completerMock struct {
	CompleteFunc func(ctx context.Context, system string, prompt string) (string, error)

	calls struct {
		Complete []struct {
			Ctx    context.Context
			System string
			Prompt string
		}
	}
	lockComplete sync.RWMutex
}

func (mock *completerMock) Complete(ctx context.Context, system string, prompt string) (string, error) {
	if mock.CompleteFunc == nil {
		panic("completerMock.CompleteFunc: method is nil but completer.Complete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		System string
		Prompt string
	}{Ctx: ctx, System: system, Prompt: prompt}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, system, prompt)
}

func (mock *completerMock) CompleteCalls() []struct {
	Ctx    context.Context
	System string
	Prompt string
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}
