package service

import (
	"context"

	"mealdrop/internal/domain"
)

// CatalogService serves restaurant and menu reads, with an optional
// Redis-backed cache in front of the repository.
type CatalogService struct {
	repo  CatalogRepository
	cache CatalogCache
}

func NewCatalogService(repo CatalogRepository, cache CatalogCache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

func (s *CatalogService) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRestaurants(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	restaurants, err := s.repo.ListRestaurants()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetRestaurants(ctx, restaurants)
	}
	return restaurants, nil
}

func (s *CatalogService) Menu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetMenu(ctx, restaurantID); err == nil && cached != nil {
			return cached, nil
		}
	}

	items, err := s.repo.ListMenu(restaurantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetMenu(ctx, restaurantID, items)
	}
	return items, nil
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
