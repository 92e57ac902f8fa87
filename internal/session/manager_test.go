package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/freshmart/storefront/internal/cart/domain"
	"github.com/freshmart/storefront/internal/platform/events"
	"github.com/freshmart/storefront/internal/view"
)

func testSnapshot() cartdomain.ProductSnapshot {
	return cartdomain.ProductSnapshot{ID: "1", Name: "Organic Bananas", Price: 2.99}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	pubSub := events.NewPubSub()
	t.Cleanup(func() { _ = pubSub.Close() })
	return NewManager(pubSub)
}

func TestManager_GetOrCreate(t *testing.T) {
	m := newTestManager(t)

	t.Run("Empty id mints a new session", func(t *testing.T) {
		first := m.GetOrCreate("")
		second := m.GetOrCreate("")
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, 2, m.Count())
	})

	t.Run("Known id resolves to the same session", func(t *testing.T) {
		s := m.GetOrCreate("")
		s.Cart.AddItem(testSnapshot())

		again := m.GetOrCreate(s.ID)
		assert.Same(t, s, again)
		assert.Equal(t, 1, again.Cart.TotalItems())
	})

	t.Run("Unknown id mints a fresh session", func(t *testing.T) {
		before := m.Count()
		s := m.GetOrCreate("not-a-real-session")
		assert.NotEqual(t, "not-a-real-session", s.ID)
		assert.Equal(t, before+1, m.Count())
	})

	t.Run("New sessions start on the home view with an empty cart", func(t *testing.T) {
		s := m.GetOrCreate("")
		assert.Equal(t, view.ViewHome, s.View.State().View)
		assert.Equal(t, 0, s.Cart.TotalItems())
	})
}
