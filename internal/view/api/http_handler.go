package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/freshmart/storefront/internal/catalog/domain"
	catalogrepo "github.com/freshmart/storefront/internal/catalog/repository"
	catalogservice "github.com/freshmart/storefront/internal/catalog/service"
	"github.com/freshmart/storefront/internal/deals"
	"github.com/freshmart/storefront/internal/platform/logger"
	"github.com/freshmart/storefront/internal/session"
	"github.com/freshmart/storefront/internal/view"
)

const sessionHeader = "X-Session-ID"

// ViewHandler exposes the per-session navigation state machine and serves
// the data backing whichever view is active.
type ViewHandler struct {
	sessions       *session.Manager
	catalogService catalogservice.CatalogService
	countdown      *deals.Countdown
}

func NewViewHandler(sessions *session.Manager, cs catalogservice.CatalogService, countdown *deals.Countdown) *ViewHandler {
	return &ViewHandler{sessions: sessions, catalogService: cs, countdown: countdown}
}

func (h *ViewHandler) RegisterRoutes(router *gin.RouterGroup) {
	viewRoutes := router.Group("/view")
	{
		viewRoutes.GET("", h.GetState)
		viewRoutes.GET("/content", h.GetContent)
		viewRoutes.POST("/product/:id", h.SelectProduct)
		viewRoutes.POST("/search", h.SubmitSearch)
		viewRoutes.POST("/category", h.SelectCategory)
		viewRoutes.POST("/weekly-deals", h.OpenWeeklyDeals)
		viewRoutes.POST("/home", h.GoHome)
	}
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
}

type categoryRequest struct {
	Category string `json:"category" binding:"required"`
}

func (h *ViewHandler) GetState(c *gin.Context) {
	s := h.resolveSession(c)
	c.JSON(http.StatusOK, s.View.State())
}

// GetContent returns the data the active view renders: featured products on
// home, the selected product on the product view, filtered results on
// search, and the deal set plus countdown on weekly-deals.
func (h *ViewHandler) GetContent(c *gin.Context) {
	s := h.resolveSession(c)
	state := s.View.State()

	switch state.View {
	case view.ViewProduct:
		productID, err := s.View.SelectedProduct()
		if err != nil {
			// Contract violation: the coordinator let a product view
			// through without a selection.
			logger.Error("Hdl.GetContent: invalid product view state", err, "session_id", s.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		product, err := h.catalogService.GetProductDetails(c.Request.Context(), productID)
		if err != nil {
			if errors.Is(err, catalogrepo.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Hdl.GetContent: product lookup failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": state.View, "product": product})

	case view.ViewSearch:
		results, err := h.catalogService.SearchProducts(c.Request.Context(), s.View.SearchFilters(), catalogdomain.SortRelevance)
		if err != nil {
			logger.Error("Hdl.GetContent: search failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load search results"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": state.View, "products": results, "count": len(results)})

	case view.ViewWeeklyDeals:
		dealsList, err := h.catalogService.WeeklyDeals(c.Request.Context())
		if err != nil {
			logger.Error("Hdl.GetContent: weekly deals failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly deals"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": state.View, "deals": dealsList, "ends_in": h.countdown.Remaining()})

	default: // home
		featured, err := h.catalogService.FeaturedProducts(c.Request.Context())
		if err != nil {
			logger.Error("Hdl.GetContent: featured failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load home content"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": state.View, "featured": featured})
	}
}

func (h *ViewHandler) SelectProduct(c *gin.Context) {
	productID := c.Param("id")
	if _, err := h.catalogService.GetProductDetails(c.Request.Context(), productID); err != nil {
		if errors.Is(err, catalogrepo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Hdl.SelectProduct: catalog lookup failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select product"})
		return
	}
	s := h.resolveSession(c)
	if err := s.View.SelectProduct(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.View.State())
}

func (h *ViewHandler) SubmitSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	s := h.resolveSession(c)
	s.View.SubmitSearch(req.Query)
	c.JSON(http.StatusOK, s.View.State())
}

func (h *ViewHandler) SelectCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	s := h.resolveSession(c)
	s.View.SelectCategory(req.Category)
	c.JSON(http.StatusOK, s.View.State())
}

func (h *ViewHandler) OpenWeeklyDeals(c *gin.Context) {
	s := h.resolveSession(c)
	s.View.OpenWeeklyDeals()
	c.JSON(http.StatusOK, s.View.State())
}

func (h *ViewHandler) GoHome(c *gin.Context) {
	s := h.resolveSession(c)
	s.View.GoHome()
	c.JSON(http.StatusOK, s.View.State())
}

func (h *ViewHandler) resolveSession(c *gin.Context) *session.Session {
	s := h.sessions.GetOrCreate(c.GetHeader(sessionHeader))
	c.Header(sessionHeader, s.ID)
	return s
}
