package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/storefront/internal/catalog/domain"
	"github.com/freshmart/storefront/internal/catalog/repository"
	"github.com/freshmart/storefront/internal/catalog/service"
	"github.com/freshmart/storefront/internal/deals"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewMemoryCatalogRepository()
	require.NoError(t, err)

	countdown, err := deals.NewCountdown("0 * * * * *")
	require.NoError(t, err)
	t.Cleanup(countdown.Stop)

	handler := NewCatalogHandler(service.NewCatalogService(repo), countdown, 5)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCatalogHandler_Products(t *testing.T) {
	router := newTestRouter(t)

	t.Run("List returns the whole catalog", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products")
		require.Equal(t, http.StatusOK, rec.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
		assert.Len(t, products, 15)
		assert.Equal(t, "Organic Bananas", products[0].Name)
	})

	t.Run("List can be narrowed to a category", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products?category=Seafood")
		require.Equal(t, http.StatusOK, rec.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
		assert.Len(t, products, 2)
	})

	t.Run("Get by id", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products/2")
		require.Equal(t, http.StatusOK, rec.Code)

		var product domain.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
		assert.Equal(t, "Fresh Salmon Fillet", product.Name)
	})

	t.Run("Unknown id is 404", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products/999")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCatalogHandler_Search(t *testing.T) {
	router := newTestRouter(t)

	type searchResponse struct {
		Products []domain.Product `json:"products"`
		Count    int              `json:"count"`
	}

	t.Run("Query and toggles combine", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products/search?q=organic&weekly_deals_only=true")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp searchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, len(resp.Products), resp.Count)
		for _, p := range resp.Products {
			assert.True(t, p.IsWeeklyDeal)
		}
		assert.NotEmpty(t, resp.Products)
	})

	t.Run("Empty result set is 200 with an empty list", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products/search?q=xyz123")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp searchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Products)
		assert.Empty(t, resp.Products)
	})

	t.Run("Sort is applied", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products/search?category=Fruits&sort=price-low")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp searchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Products)
		assert.Equal(t, "Avocados", resp.Products[0].Name)
	})

	t.Run("Malformed numeric filter is 400", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products/search?min_price=cheap")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Malformed toggle is 400", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products/search?in_stock_only=maybe")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCatalogHandler_HomeSurfaces(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Categories are sorted", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/categories")
		require.Equal(t, http.StatusOK, rec.Code)

		var categories []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
		assert.Equal(t, []string{"Bakery", "Dairy", "Fruits", "Meat", "Seafood", "Vegetables"}, categories)
	})

	t.Run("Featured is the catalog prefix", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/featured")
		require.Equal(t, http.StatusOK, rec.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
		require.Len(t, products, 6)
		assert.Equal(t, "Organic Bananas", products[0].Name)
	})

	t.Run("Weekly deals payload", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/weekly-deals")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Deals              []domain.Product `json:"deals"`
			Count              int              `json:"count"`
			EndsIn             string           `json:"ends_in"`
			TopDiscountPercent int              `json:"top_discount_percent"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 5, resp.Count)
		assert.NotEmpty(t, resp.EndsIn)
		// Organic Bananas lead the deal set: 3.49 -> 2.99 is 14% off.
		assert.Equal(t, 14, resp.TopDiscountPercent)
	})

	t.Run("Suggestions respect the limit", func(t *testing.T) {
		rec := doGet(t, router, "/api/v1/products/suggestions?q=fresh&limit=2")
		require.Equal(t, http.StatusOK, rec.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
		assert.Len(t, products, 2)
	})
}
