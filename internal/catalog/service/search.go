package service

import (
	"context"
	"sort"

	"github.com/freshmart/storefront/internal/catalog/domain"
)

// SearchProducts filters the catalog with the AND of every present predicate,
// preserving catalog order, then applies the requested stable sort.
// Filters that exclude everything yield an empty slice, never an error.
func (s *catalogServiceImpl) SearchProducts(ctx context.Context, filters domain.SearchFilters, sortBy domain.SortOption) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.Product{}
	for _, p := range products {
		if filters.Matches(p) {
			matched = append(matched, p)
		}
	}
	sortProducts(matched, sortBy)
	return matched, nil
}

// SearchSuggestions returns the first limit products matching the query,
// for the header type-ahead.
func (s *catalogServiceImpl) SearchSuggestions(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if query == "" || limit <= 0 {
		return []domain.Product{}, nil
	}
	matched, err := s.SearchProducts(ctx, domain.SearchFilters{Query: query}, domain.SortRelevance)
	if err != nil {
		return nil, err
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// sortProducts sorts in place. Sorts are stable: ties keep their relative
// catalog order. Unknown options keep the input order.
func sortProducts(products []domain.Product, sortBy domain.SortOption) {
	switch sortBy {
	case domain.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case domain.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case domain.SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	case domain.SortName:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	}
}
