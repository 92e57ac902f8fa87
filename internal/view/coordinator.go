package view

import (
	"errors"
	"strings"
	"sync"

	catalogdomain "github.com/freshmart/storefront/internal/catalog/domain"
)

// View names the screens of the storefront.
type View string

const (
	ViewHome        View = "home"
	ViewProduct     View = "product"
	ViewSearch      View = "search"
	ViewWeeklyDeals View = "weekly-deals"
)

// ErrNoProductSelected signals a contract violation: the product view was
// consulted without a selected product.
var ErrNoProductSelected = errors.New("no product selected for product view")

// State is the current view plus whatever selection it carries.
type State struct {
	View      View   `json:"view"`
	ProductID string `json:"product_id,omitempty"`
	Query     string `json:"query,omitempty"`
	Category  string `json:"category,omitempty"`
}

// Coordinator is the navigation state machine of one session. It holds no
// business logic; it only records which screen is active and what the
// screen is looking at.
type Coordinator struct {
	mu    sync.Mutex
	state State
}

func NewCoordinator() *Coordinator {
	return &Coordinator{state: State{View: ViewHome}}
}

// SelectProduct moves to the product view carrying the product id.
func (c *Coordinator) SelectProduct(productID string) error {
	if productID == "" {
		return ErrNoProductSelected
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{View: ViewProduct, ProductID: productID}
	return nil
}

// SubmitSearch moves to the search view carrying the trimmed query text.
// A blank query is ignored and the current view stays active.
func (c *Coordinator) SubmitSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{View: ViewSearch, Query: query}
}

// SelectCategory moves to the search view carrying the category as a
// filter rather than free text.
func (c *Coordinator) SelectCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{View: ViewSearch, Category: category}
}

func (c *Coordinator) OpenWeeklyDeals() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{View: ViewWeeklyDeals}
}

// GoHome returns to the home view, clearing all carried selection state.
func (c *Coordinator) GoHome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{View: ViewHome}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SelectedProduct returns the product id carried by the product view, or
// ErrNoProductSelected when the precondition does not hold.
func (c *Coordinator) SelectedProduct() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.View != ViewProduct || c.state.ProductID == "" {
		return "", ErrNoProductSelected
	}
	return c.state.ProductID, nil
}

// SearchFilters expresses the search view's carried state as catalog
// filters: free text for a submitted query, an exact category filter for a
// category click.
func (c *Coordinator) SearchFilters() catalogdomain.SearchFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	filters := catalogdomain.SearchFilters{Query: c.state.Query}
	if c.state.Category != "" {
		filters.Category = c.state.Category
	}
	return filters
}
