package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/freshmart/storefront/internal/catalog/domain"
)

var ErrProductNotFound = errors.New("product not found")

//go:embed catalog.yaml
var catalogSeed []byte

type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
}

// memoryCatalogRepository serves the static catalog. Products never change
// after construction, so reads need no locking.
type memoryCatalogRepository struct {
	products []domain.Product
	byID     map[string]int
}

// NewMemoryCatalogRepository loads the embedded catalog seed.
func NewMemoryCatalogRepository() (CatalogRepository, error) {
	var seed struct {
		Products []domain.Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(catalogSeed, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}
	return NewMemoryCatalogRepositoryWithProducts(seed.Products)
}

// NewMemoryCatalogRepositoryWithProducts builds a repository over the given
// products, validating the catalog invariants up front.
func NewMemoryCatalogRepositoryWithProducts(products []domain.Product) (CatalogRepository, error) {
	if len(products) == 0 {
		return nil, errors.New("catalog must not be empty")
	}
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &memoryCatalogRepository{products: products, byID: byID}, nil
}

func validateProduct(p domain.Product) error {
	if p.ID == "" {
		return errors.New("product id must not be empty")
	}
	if p.Price < 0 {
		return fmt.Errorf("product %q has negative price %.2f", p.ID, p.Price)
	}
	if p.OriginalPrice != nil && *p.OriginalPrice <= p.Price {
		return fmt.Errorf("product %q original price %.2f must exceed price %.2f", p.ID, *p.OriginalPrice, p.Price)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product %q rating %.1f out of range [0, 5]", p.ID, p.Rating)
	}
	if p.ReviewCount < 0 {
		return fmt.Errorf("product %q has negative review count %d", p.ID, p.ReviewCount)
	}
	return nil
}

// ListProducts returns all products in catalog (insertion) order.
func (r *memoryCatalogRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memoryCatalogRepository) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := r.products[idx]
	return &p, nil
}
