package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/severetsunamist/real-estate-crm/internal/api"
	"github.com/severetsunamist/real-estate-crm/internal/config"
	"github.com/severetsunamist/real-estate-crm/internal/db"
	"github.com/severetsunamist/real-estate-crm/internal/logging"
	"github.com/severetsunamist/real-estate-crm/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connection (non-fatal; allow process to start for /live)
	database, err := db.New(cfg)
	if err != nil {
		log.Printf("[WARN] Database initialization failed at startup: %v", err)
	}
	if database != nil {
		defer database.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.EnsureSchema(ctx); err != nil {
			log.Printf("[WARN] Schema bootstrap failed: %v", err)
		}
		cancel()
	}

	store, err := storage.FromConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	handler := api.NewHandler(database, store)
	router := setupRouter(handler, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

func setupRouter(handler *api.Handler, cfg *config.Config) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" && !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logging.RequestLogger())
	router.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(cfg.AllowedHosts) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedHosts
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	// Serve uploaded files for local development
	router.Static("/uploads", "./uploads")

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	v1.Use(api.AuthMiddleware(cfg.SecretKey))
	{
		// Companies with contact inlines
		v1.GET("/companies", handler.GetCompanies)
		v1.GET("/companies/:id", handler.GetCompany)
		v1.GET("/contacts", handler.GetContacts)

		// Objects with image and offer inlines
		v1.GET("/objects", handler.GetObjects)
		v1.GET("/objects/:id", handler.GetObject)
		v1.GET("/objects/:id/images", handler.GetObjectImages)
		v1.GET("/offers", handler.GetOffers)
		v1.GET("/offers/:id", handler.GetOffer)
		v1.GET("/agents", handler.GetAgents)

		// Write operations require the Admin role
		admin := v1.Group("")
		admin.Use(api.AdminMiddleware())
		{
			admin.POST("/companies", handler.CreateCompany)
			admin.PUT("/companies/:id", handler.UpdateCompany)
			admin.DELETE("/companies/:id", handler.DeleteCompany)
			admin.POST("/companies/:id/logo", handler.UploadCompanyLogo)
			admin.POST("/companies/:id/contacts", handler.CreateContact)

			admin.PUT("/contacts/:id", handler.UpdateContact)
			admin.DELETE("/contacts/:id", handler.DeleteContact)

			admin.POST("/agents", handler.CreateAgent)
			admin.PUT("/agents/:id", handler.UpdateAgent)
			admin.DELETE("/agents/:id", handler.DeleteAgent)

			admin.POST("/objects", handler.CreateObject)
			admin.PUT("/objects/:id", handler.UpdateObject)
			admin.DELETE("/objects/:id", handler.DeleteObject)
			admin.POST("/objects/:id/offers", handler.CreateOffer)
			admin.POST("/objects/:id/images", handler.UploadObjectImage)
			admin.PUT("/objects/:id/images/reorder", handler.ReorderObjectImages)

			admin.PUT("/offers/:id", handler.UpdateOffer)
			admin.DELETE("/offers/:id", handler.DeleteOffer)
			admin.POST("/offers/:id/floorplan", handler.UploadOfferFloorplan)

			admin.PUT("/images/:image_id", handler.UpdateObjectImage)
			admin.DELETE("/images/:image_id", handler.DeleteObjectImage)
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "real-estate-crm",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}
