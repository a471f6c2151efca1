package routes

import (
	"github.com/01moynul/utensils-admin/internal/handlers"
	"github.com/01moynul/utensils-admin/internal/logger"
	"github.com/01moynul/utensils-admin/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Options are the router settings that do not belong to the handlers.
type Options struct {
	AllowedOrigin string
	// AuthRequired puts every mutating route and the PDF reports behind a bearer token.
	AuthRequired bool
	UploadDir    string
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	log := h.Log
	if log == nil {
		log = logger.Discard()
	}
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(log.GinMiddleware())
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigin))

	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	guard := middleware.Optional(opts.AuthRequired, middleware.AuthMiddleware(h.Tokens))

	api := router.Group("/api")
	{
		// --- Public ---
		api.GET("/ping", h.Ping)
		api.GET("/health", h.Health)
		api.POST("/auth/login", h.Login)
		api.POST("/upload", guard, h.UploadFile)

		// --- Categories ---
		categories := api.Group("/categories")
		{
			categories.GET("", h.ListCategories)
			categories.POST("", guard, h.CreateCategory)
			categories.PUT("/:id", guard, h.UpdateCategory)
			categories.DELETE("/:id", guard, h.DeleteCategory)
			categories.GET("/:id/subcategories", h.ListSubcategoriesByCategory)
			categories.GET("/subcategories/:subcategoryId/products", h.ListProductsBySubcategory)
		}

		// --- Subcategories ---
		subcategories := api.Group("/subcategories")
		{
			subcategories.GET("", h.ListSubcategories)
			subcategories.GET("/:id", h.GetSubcategory)
			subcategories.POST("", guard, h.CreateSubcategory)
			subcategories.PUT("/:id", guard, h.UpdateSubcategory)
			subcategories.DELETE("/:id", guard, h.DeleteSubcategory)
		}

		// --- Products ---
		products := api.Group("/products")
		{
			products.GET("/columns", h.GetProductColumns)
			products.GET("", h.ListProducts)
			products.GET("/:id", h.GetProduct)
			products.POST("", guard, h.CreateProduct)
			products.PUT("/:id", guard, h.UpdateProduct)
			products.DELETE("/:id", guard, h.DeleteProduct)
		}

		// --- Register (admin-managed users) ---
		register := api.Group("/register")
		{
			register.GET("", guard, h.ListRegisters)
			register.POST("", guard, h.CreateRegister)
			register.PUT("/:id", guard, h.UpdateRegister)
			register.DELETE("/:id", guard, h.DeleteRegister)
		}

		// --- Orders ---
		orders := api.Group("/orders")
		{
			orders.GET("", h.ListOrders)
			orders.GET("/:id", h.GetOrder)
			orders.PUT("/:id", guard, h.UpdateOrderStatus)
		}

		// --- Analytics ---
		analytics := api.Group("/analytics")
		{
			analytics.GET("/total-users", h.TotalUsers)
			analytics.GET("/total-orders", h.TotalOrders)
			analytics.GET("/total-revenue", h.TotalRevenue)
			analytics.GET("/top-products", h.TopProducts)
			analytics.GET("/category-sales", h.CategorySales)
			analytics.GET("/user-report", guard, h.UserReport)
			analytics.GET("/orders-report", guard, h.OrdersReport)
		}
	}

	return router
}
