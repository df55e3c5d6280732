// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/commerce-api/internal/interfaces/http/handlers"
)

// Handlers bundles every endpoint handler
type Handlers struct {
	Product        *handlers.ProductHandler
	Category       *handlers.CategoryHandler
	Order          *handlers.OrderHandler
	Invoice        *handlers.InvoiceHandler
	Inventory      *handlers.InventoryHandler
	Analytics      *handlers.AnalyticsHandler
	Recommendation *handlers.RecommendationHandler
	WhatsApp       *handlers.WhatsAppHandler
}

// SetupRoutes registers all API routes on rg
func SetupRoutes(rg *gin.RouterGroup, h *Handlers) {
	SetupCatalogRoutes(rg, h)
	SetupOrderRoutes(rg, h)
	SetupInventoryRoutes(rg, h)
	SetupDashboardRoutes(rg, h)
	SetupRecommendationRoutes(rg, h)
	SetupWhatsAppRoutes(rg, h)
}

// SetupCatalogRoutes sets up category and product routes
func SetupCatalogRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/categories", h.Category.GetCategories)

	products := rg.Group("/products")
	{
		products.GET("", h.Product.GetProducts)
		products.GET("/search", h.Product.SearchProducts)
		products.GET("/:id", h.Product.GetProduct)
		products.POST("", h.Product.CreateProduct)
	}
}

// SetupOrderRoutes sets up order routes. The invoice route is only
// registered when an invoice handler is configured.
func SetupOrderRoutes(rg *gin.RouterGroup, h *Handlers) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("", h.Order.GetOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.PUT("/:id/status", h.Order.UpdateOrderStatus)

		if h.Invoice != nil {
			orders.GET("/:id/invoice", h.Invoice.GenerateInvoice)
		}
	}
}

// SetupInventoryRoutes sets up stock adjustment and ledger routes
func SetupInventoryRoutes(rg *gin.RouterGroup, h *Handlers) {
	inventory := rg.Group("/inventory")
	{
		inventory.POST("/adjust", h.Inventory.AdjustInventory)
		inventory.GET("/movements", h.Inventory.GetMovements)
	}
}

// SetupDashboardRoutes sets up reporting routes
func SetupDashboardRoutes(rg *gin.RouterGroup, h *Handlers) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", h.Analytics.GetStats)
		dashboard.GET("/sales-report", h.Analytics.GetSalesReport)
	}
}

// SetupRecommendationRoutes sets up recommendation routes
func SetupRecommendationRoutes(rg *gin.RouterGroup, h *Handlers) {
	recommendations := rg.Group("/recommendations")
	{
		recommendations.POST("/generate/:customer_id", h.Recommendation.Generate)
		recommendations.POST("/track", h.Recommendation.TrackInteraction)
	}
}

// SetupWhatsAppRoutes sets up message intake routes
func SetupWhatsAppRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/whatsapp/process-message", h.WhatsApp.ProcessMessage)
}
