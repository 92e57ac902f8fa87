package main

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"

	cartAPI "github.com/freshmart/storefront/internal/cart/api"
	cartDomain "github.com/freshmart/storefront/internal/cart/domain"
	catalogAPI "github.com/freshmart/storefront/internal/catalog/api"
	catalogRepo "github.com/freshmart/storefront/internal/catalog/repository"
	catalogService "github.com/freshmart/storefront/internal/catalog/service"
	"github.com/freshmart/storefront/internal/deals"
	"github.com/freshmart/storefront/internal/platform/config"
	"github.com/freshmart/storefront/internal/platform/events"
	"github.com/freshmart/storefront/internal/platform/logger"
	"github.com/freshmart/storefront/internal/session"
	viewAPI "github.com/freshmart/storefront/internal/view/api"
)

func main() {
	defer logger.Sync()

	// Load Config
	serverCfg := config.LoadServerConfig("8080")
	storeCfg := config.LoadStorefrontConfig()
	if storeCfg.GinMode != "" {
		gin.SetMode(storeCfg.GinMode)
	}

	logger.Info("Starting FreshMart storefront...")

	// Static catalog: validated at load, immutable afterwards.
	repo, err := catalogRepo.NewMemoryCatalogRepository()
	if err != nil {
		logger.Error("Failed to load catalog", err)
		return
	}

	// Event bus for cart mutations.
	pubSub := events.NewPubSub()
	defer pubSub.Close()
	go consumeCartEvents(pubSub)

	// Weekly-deals countdown refresher.
	countdown, err := deals.NewCountdown(storeCfg.CountdownSpec)
	if err != nil {
		logger.Error("Failed to start deals countdown", err)
		return
	}
	defer countdown.Stop()

	// Setup Dependencies
	sessions := session.NewManager(pubSub)
	catalogSvc := catalogService.NewCatalogService(repo)

	catalogHandler := catalogAPI.NewCatalogHandler(catalogSvc, countdown, storeCfg.SuggestionLimit)
	cartHandler := cartAPI.NewCartHandler(sessions, catalogSvc)
	viewHandler := viewAPI.NewViewHandler(sessions, catalogSvc, countdown)

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiV1 := router.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	viewHandler.RegisterRoutes(apiV1)

	logger.Info("Storefront running", "port", serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run storefront server", err)
	}
}

// consumeCartEvents logs every cart mutation. Publishing blocks until this
// subscriber acks, which keeps mutations observable in intent order.
func consumeCartEvents(pubSub *gochannel.GoChannel) {
	messages, err := pubSub.Subscribe(context.Background(), events.CartTopic)
	if err != nil {
		logger.Error("Failed to subscribe to cart events", err)
		return
	}
	for msg := range messages {
		var event cartDomain.Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			logger.Error("Malformed cart event", err, "message_id", msg.UUID)
			msg.Ack()
			continue
		}
		logger.Info("Cart event",
			"type", event.Type,
			"session_id", event.SessionID,
			"product_id", event.ProductID,
			"quantity", event.Quantity,
			"total_items", event.TotalItems,
		)
		msg.Ack()
	}
}
