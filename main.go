package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"menuva/cache"
	"menuva/config"
	"menuva/events"
	"menuva/handlers"
	"menuva/routes"
	"menuva/store"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	db := config.OpenDB()

	var listCache *cache.Cache
	if client := config.RedisClient(); client != nil {
		listCache = cache.New(client, config.CacheTTL())
		log.Println("restaurant-list cache enabled")
	}

	var publisher events.Publisher = events.Noop{}
	if writer := config.KafkaWriter(); writer != nil {
		publisher = events.NewKafkaPublisher(writer)
		defer writer.Close()
		log.Println("order event publishing enabled")
	}

	api := handlers.NewAPI(
		store.NewOrders(db),
		store.NewCatalog(db),
		store.NewUsers(db),
		publisher,
		listCache,
	)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Menuva Marketplace API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, api)

	port := config.Port()
	log.Printf("Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
