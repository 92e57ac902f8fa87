package service

import (
	"context"
	"sort"
	"sync"

	"github.com/freshmart/storefront/internal/catalog/domain"
	"github.com/freshmart/storefront/internal/catalog/repository"
)

// featuredCount is how many leading catalog entries the home page shows.
// The selection is the fixed catalog prefix, not a ranking.
const featuredCount = 6

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductDetails(ctx context.Context, productID string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	FeaturedProducts(ctx context.Context) ([]domain.Product, error)
	WeeklyDeals(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, filters domain.SearchFilters, sortBy domain.SortOption) ([]domain.Product, error)
	SearchSuggestions(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

type catalogServiceImpl struct {
	repo repository.CatalogRepository

	// The catalog never changes, so the distinct category list is
	// computed once on first use.
	categoriesOnce sync.Once
	categories     []string
	categoriesErr  error
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogServiceImpl{repo: repo}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *catalogServiceImpl) GetProductDetails(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	s.categoriesOnce.Do(func() {
		products, err := s.repo.ListProducts(ctx)
		if err != nil {
			s.categoriesErr = err
			return
		}
		seen := make(map[string]struct{})
		for _, p := range products {
			if _, ok := seen[p.Category]; !ok {
				seen[p.Category] = struct{}{}
				s.categories = append(s.categories, p.Category)
			}
		}
		sort.Strings(s.categories)
	})
	if s.categoriesErr != nil {
		return nil, s.categoriesErr
	}
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *catalogServiceImpl) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.Product{}
	for _, p := range products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *catalogServiceImpl) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > featuredCount {
		products = products[:featuredCount]
	}
	return products, nil
}

func (s *catalogServiceImpl) WeeklyDeals(ctx context.Context) ([]domain.Product, error) {
	return s.SearchProducts(ctx, domain.SearchFilters{WeeklyDealsOnly: true}, domain.SortRelevance)
}
