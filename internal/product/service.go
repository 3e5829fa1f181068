package product

import (
	"context"

	"meridian-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	CheckAvailability(ctx context.Context, productID string, quantity int) (StockCheck, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch product list", zap.Error(err))
		return nil, err
	}
	return products, nil
}

func (s *service) CheckAvailability(ctx context.Context, productID string, quantity int) (StockCheck, error) {
	return s.repo.CheckAvailability(ctx, productID, quantity)
}
