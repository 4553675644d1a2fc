package routes

import (
	"github.com/gin-gonic/gin"

	"menuva/handlers"
	"menuva/middleware"
	"menuva/models"
)

func SetupRoutes(r *gin.Engine, api *handlers.API) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", api.Register)
		public.POST("/auth/login", api.Login)

		// Catalog (no auth needed)
		public.GET("/restaurants", api.ListRestaurants)
		public.GET("/restaurants/:id", api.GetRestaurant)
		public.GET("/restaurants/:id/menu", api.GetMenu)
		public.GET("/categories", api.ListCategories)

		// Guest checkout + tracking (lookup-by-secret, no session)
		public.POST("/checkout", api.Checkout)
		public.GET("/track", api.TrackOrders)
		public.GET("/track/:number/qr", api.TrackQR)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", api.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", api.GetProfile)
	}

	// ── Restaurator routes ─────────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurator))
	{
		restaurant.GET("/", api.GetMyRestaurant)
		restaurant.PUT("/", api.UpdateMyRestaurant)

		// Menu management
		restaurant.GET("/products", api.ListMyProducts)
		restaurant.POST("/products", api.AddProduct)
		restaurant.PUT("/products/:productId", api.UpdateProduct)
		restaurant.DELETE("/products/:productId", api.DeleteProduct)

		// Order management
		restaurant.GET("/orders", api.ListMyOrders)
		restaurant.PUT("/orders/:id/status", api.UpdateOrderStatus)
		restaurant.PUT("/orders/:id/payment", api.UpdatePaymentStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", api.AdminListOrders)
		admin.PUT("/orders/:id/status", api.AdminUpdateOrderStatus)
		admin.GET("/users", api.AdminListUsers)
		admin.GET("/restaurants", api.AdminListRestaurants)
		admin.POST("/restaurants", api.AdminCreateRestaurant)
		admin.POST("/categories", api.AdminCreateCategory)
		admin.DELETE("/categories/:id", api.AdminDeleteCategory)
	}
}
