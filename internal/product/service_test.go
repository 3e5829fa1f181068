package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) CheckAvailability(ctx context.Context, productID string, quantity int) (StockCheck, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(StockCheck), args.Error(1)
}

func (m *MockRepository) DecrementStock(ctx context.Context, q Queryer, productID string, quantity int) (int, error) {
	args := m.Called(ctx, q, productID, quantity)
	return args.Int(0), args.Error(1)
}

func TestService_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("List", mock.Anything).Return([]Product{{ID: "prod-1"}}, nil)

		products, err := svc.List(context.Background())
		assert.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("List", mock.Anything).Return(nil, errors.New("db error"))

		_, err := svc.List(context.Background())
		assert.Error(t, err)
	})
}

func TestService_CheckAvailability(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("CheckAvailability", mock.Anything, "prod-1", 2).
		Return(StockCheck{Available: true, CurrentStock: 7, ProductName: "Walnut Desk"}, nil)

	chk, err := svc.CheckAvailability(context.Background(), "prod-1", 2)
	assert.NoError(t, err)
	assert.True(t, chk.Available)
	assert.Equal(t, 7, chk.CurrentStock)
}

func TestService_GetByID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, ErrProductNotFound)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
