package product

import (
	"context"
	"strings"

	"pastafresca-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, onlyAvailable bool) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) error
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

func (s *service) List(ctx context.Context, onlyAvailable bool) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	products, err := s.repo.List(ctx, onlyAvailable)
	if err != nil {
		log.Error("failed to fetch product list", zap.Error(err))
		return nil, err
	}

	log.Debug("product list fetched", zap.Int("count", len(products)))
	return products, nil
}

func (s *service) Create(ctx context.Context, p Product) (Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Product{}, ErrEmptyName
	}
	if p.Price <= 0 {
		return Product{}, ErrInvalidPrice
	}

	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, p Product) error {
	if p.ID == "" {
		return ErrNotFound
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}

	return s.repo.Update(ctx, p)
}
