package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinator_Transitions(t *testing.T) {
	c := NewCoordinator()

	t.Run("Initial state is home", func(t *testing.T) {
		assert.Equal(t, ViewHome, c.State().View)
	})

	t.Run("Selecting a product", func(t *testing.T) {
		assert.NoError(t, c.SelectProduct("1"))
		state := c.State()
		assert.Equal(t, ViewProduct, state.View)
		assert.Equal(t, "1", state.ProductID)

		selected, err := c.SelectedProduct()
		assert.NoError(t, err)
		assert.Equal(t, "1", selected)
	})

	t.Run("Submitting a search", func(t *testing.T) {
		c.SubmitSearch("  organic  ")
		state := c.State()
		assert.Equal(t, ViewSearch, state.View)
		assert.Equal(t, "organic", state.Query)
		assert.Empty(t, state.ProductID, "search replaces the product selection")
	})

	t.Run("Clicking a category carries a filter, not free text", func(t *testing.T) {
		c.SelectCategory("Dairy")
		state := c.State()
		assert.Equal(t, ViewSearch, state.View)
		assert.Equal(t, "Dairy", state.Category)
		assert.Empty(t, state.Query)

		filters := c.SearchFilters()
		assert.Equal(t, "Dairy", filters.Category)
		assert.Empty(t, filters.Query)
	})

	t.Run("Opening weekly deals", func(t *testing.T) {
		c.OpenWeeklyDeals()
		assert.Equal(t, ViewWeeklyDeals, c.State().View)
	})

	t.Run("Going home clears all carried state", func(t *testing.T) {
		c.GoHome()
		assert.Equal(t, State{View: ViewHome}, c.State())
	})
}

func TestCoordinator_Preconditions(t *testing.T) {
	c := NewCoordinator()

	t.Run("Product view without a selection fails fast", func(t *testing.T) {
		_, err := c.SelectedProduct()
		assert.ErrorIs(t, err, ErrNoProductSelected)
	})

	t.Run("Empty product id is rejected", func(t *testing.T) {
		assert.ErrorIs(t, c.SelectProduct(""), ErrNoProductSelected)
		assert.Equal(t, ViewHome, c.State().View)
	})

	t.Run("Blank search is ignored", func(t *testing.T) {
		c.SubmitSearch("   ")
		assert.Equal(t, ViewHome, c.State().View)
	})
}
