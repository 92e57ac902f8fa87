package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/storefront/internal/catalog/domain"
	"github.com/freshmart/storefront/internal/catalog/repository"
	"github.com/freshmart/storefront/internal/catalog/service"
	"github.com/freshmart/storefront/internal/deals"
	"github.com/freshmart/storefront/internal/platform/logger"
)

type CatalogHandler struct {
	catalogService  service.CatalogService
	countdown       *deals.Countdown
	suggestionLimit int
}

func NewCatalogHandler(cs service.CatalogService, countdown *deals.Countdown, suggestionLimit int) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  cs,
		countdown:       countdown,
		suggestionLimit: suggestionLimit,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/search", h.SearchProducts)
		productRoutes.GET("/suggestions", h.SearchSuggestions)
		productRoutes.GET("/:id", h.GetProduct)
	}
	router.GET("/categories", h.ListCategories)
	router.GET("/featured", h.FeaturedProducts)
	router.GET("/weekly-deals", h.WeeklyDeals)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		products, err := h.catalogService.ProductsByCategory(c.Request.Context(), category)
		if err != nil {
			logger.Error("Hdl.ListProducts: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
			return
		}
		c.JSON(http.StatusOK, products)
		return
	}
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	product, err := h.catalogService.GetProductDetails(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Hdl.GetProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filters: " + err.Error()})
		return
	}
	sortBy := domain.SortOption(c.DefaultQuery("sort", string(domain.SortRelevance)))

	products, err := h.catalogService.SearchProducts(c.Request.Context(), filters, sortBy)
	if err != nil {
		logger.Error("Hdl.SearchProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *CatalogHandler) SearchSuggestions(c *gin.Context) {
	query := c.Query("q")
	limit := h.suggestionLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}
	products, err := h.catalogService.SearchSuggestions(c.Request.Context(), query, limit)
	if err != nil {
		logger.Error("Hdl.SearchSuggestions: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListCategories: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) FeaturedProducts(c *gin.Context) {
	products, err := h.catalogService.FeaturedProducts(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.FeaturedProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve featured products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) WeeklyDeals(c *gin.Context) {
	dealsList, err := h.catalogService.WeeklyDeals(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.WeeklyDeals: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve weekly deals"})
		return
	}
	topDiscount := 0
	if len(dealsList) > 0 {
		topDiscount = deals.DiscountPercent(dealsList[0])
	}
	c.JSON(http.StatusOK, gin.H{
		"deals":                dealsList,
		"count":                len(dealsList),
		"ends_in":              h.countdown.Remaining(),
		"top_discount_percent": topDiscount,
	})
}

func parseFilters(c *gin.Context) (domain.SearchFilters, error) {
	filters := domain.SearchFilters{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}
	var err error
	if filters.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return filters, err
	}
	if filters.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return filters, err
	}
	if filters.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		return filters, err
	}
	if filters.InStockOnly, err = queryBool(c, "in_stock_only"); err != nil {
		return filters, err
	}
	if filters.OnSaleOnly, err = queryBool(c, "on_sale_only"); err != nil {
		return filters, err
	}
	if filters.WeeklyDealsOnly, err = queryBool(c, "weekly_deals_only"); err != nil {
		return filters, err
	}
	return filters, nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func queryBool(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
