package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

var _ productRepo = &productRepoMock{}

type productRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListFunc    func(ctx context.Context) ([]domain.Product, error)
	UpdateFunc  func(ctx context.Context, p *domain.Product) (*domain.Product, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
		List   []struct{}
		Update []struct {
			P *domain.Product
		}
	}
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
	lockUpdate  sync.RWMutex
}

func (mock *productRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if mock.GetByIDFunc == nil {
		panic("productRepoMock.GetByIDFunc: method is nil but productRepo.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct {
		ID uuid.UUID
	}{ID: id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *productRepoMock) List(ctx context.Context) ([]domain.Product, error) {
	if mock.ListFunc == nil {
		panic("productRepoMock.ListFunc: method is nil but productRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{}{})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *productRepoMock) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if mock.UpdateFunc == nil {
		panic("productRepoMock.UpdateFunc: method is nil but productRepo.Update was just called")
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		P *domain.Product
	}{P: p})
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, p)
}

func (mock *productRepoMock) UpdateCalls() []struct {
	P *domain.Product
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
