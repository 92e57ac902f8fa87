package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/freshmart/storefront/internal/cart/domain"
	catalogrepo "github.com/freshmart/storefront/internal/catalog/repository"
	catalogservice "github.com/freshmart/storefront/internal/catalog/service"
	"github.com/freshmart/storefront/internal/platform/logger"
	"github.com/freshmart/storefront/internal/session"
)

// SessionHeader identifies the visitor. The handler mints a session when
// the header is missing and always echoes the id back.
const SessionHeader = "X-Session-ID"

type CartHandler struct {
	sessions       *session.Manager
	catalogService catalogservice.CatalogService
}

func NewCartHandler(sessions *session.Manager, cs catalogservice.CatalogService) *CartHandler {
	return &CartHandler{sessions: sessions, catalogService: cs}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cartRoutes := router.Group("/cart")
	{
		cartRoutes.GET("", h.GetCart)
		cartRoutes.POST("/items", h.AddItem)
		cartRoutes.PATCH("/items/:id", h.UpdateQuantity)
		cartRoutes.DELETE("/items/:id", h.RemoveItem)
		cartRoutes.DELETE("", h.ClearCart)
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	s := h.resolveSession(c)
	c.JSON(http.StatusOK, s.Cart.Summary())
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product, err := h.catalogService.GetProductDetails(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalogrepo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Hdl.AddItem: catalog lookup failed", err, "product_id", req.ProductID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	// Snapshot taken at add time: later catalog changes do not touch the line.
	snapshot := cartdomain.ProductSnapshot{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Category: product.Category,
	}

	s := h.resolveSession(c)
	for i := 0; i < req.Quantity; i++ {
		s.Cart.AddItem(snapshot)
	}
	c.JSON(http.StatusOK, s.Cart.Summary())
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	s := h.resolveSession(c)
	s.Cart.UpdateQuantity(c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, s.Cart.Summary())
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	s := h.resolveSession(c)
	s.Cart.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, s.Cart.Summary())
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	s := h.resolveSession(c)
	s.Cart.Clear()
	c.JSON(http.StatusOK, s.Cart.Summary())
}

func (h *CartHandler) resolveSession(c *gin.Context) *session.Session {
	s := h.sessions.GetOrCreate(c.GetHeader(SessionHeader))
	c.Header(SessionHeader, s.ID)
	return s
}
