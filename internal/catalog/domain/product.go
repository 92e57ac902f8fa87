package domain

import "strings"

// CategoryAll is the category selector value meaning "no category constraint".
const CategoryAll = "All"

// NutritionalInfo holds the per-serving facts shown on a product page.
type NutritionalInfo struct {
	Calories int    `json:"calories" yaml:"calories"`
	Protein  string `json:"protein" yaml:"protein"`
	Carbs    string `json:"carbs" yaml:"carbs"`
	Fat      string `json:"fat" yaml:"fat"`
}

// Product is immutable after the catalog is loaded.
type Product struct {
	ID            string           `json:"id" yaml:"id"`
	Name          string           `json:"name" yaml:"name"`
	Price         float64          `json:"price" yaml:"price"`
	OriginalPrice *float64         `json:"original_price,omitempty" yaml:"original_price"`
	Image         string           `json:"image" yaml:"image"`
	Category      string           `json:"category" yaml:"category"`
	Description   string           `json:"description" yaml:"description"`
	Rating        float64          `json:"rating" yaml:"rating"`
	ReviewCount   int              `json:"review_count" yaml:"review_count"`
	InStock       bool             `json:"in_stock" yaml:"in_stock"`
	Weight        string           `json:"weight,omitempty" yaml:"weight"`
	Origin        string           `json:"origin,omitempty" yaml:"origin"`
	IsWeeklyDeal  bool             `json:"is_weekly_deal" yaml:"is_weekly_deal"`
	DealEndDate   string           `json:"deal_end_date,omitempty" yaml:"deal_end_date"`
	Tags          []string         `json:"tags" yaml:"tags"`
	Nutrition     *NutritionalInfo `json:"nutrition,omitempty" yaml:"nutrition"`
}

// OnSale reports whether the product carries a pre-discount price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil
}

// SearchFilters is a partially-populated set of constraints. A zero-value
// field means "no constraint": empty Query, empty or "All" Category, nil
// price/rating bounds and false toggles all pass every product.
type SearchFilters struct {
	Query           string   `json:"query"`
	Category        string   `json:"category"`
	MinPrice        *float64 `json:"min_price,omitempty"`
	MaxPrice        *float64 `json:"max_price,omitempty"`
	MinRating       *float64 `json:"min_rating,omitempty"`
	InStockOnly     bool     `json:"in_stock_only"`
	OnSaleOnly      bool     `json:"on_sale_only"`
	WeeklyDealsOnly bool     `json:"weekly_deals_only"`
}

// Matches reports whether the product satisfies every present predicate.
// Predicates are AND-composed; malformed ranges simply match nothing.
func (f SearchFilters) Matches(p Product) bool {
	if f.Query != "" {
		query := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) &&
			!matchesAnyTag(p.Tags, query) {
			return false
		}
	}
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	if f.OnSaleOnly && !p.OnSale() {
		return false
	}
	if f.WeeklyDealsOnly && !p.IsWeeklyDeal {
		return false
	}
	return true
}

func matchesAnyTag(tags []string, loweredQuery string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), loweredQuery) {
			return true
		}
	}
	return false
}

// SortOption selects the post-filter ordering of search results.
type SortOption string

const (
	SortRelevance SortOption = "relevance"  // keep catalog order
	SortPriceLow  SortOption = "price-low"  // price ascending
	SortPriceHigh SortOption = "price-high" // price descending
	SortRating    SortOption = "rating"     // rating descending
	SortName      SortOption = "name"       // name ascending
)
