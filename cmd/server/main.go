package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/auth"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/database"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/handlers"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := handlers.NewHandler(db)

	r := gin.Default()

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Care Class Attendance API",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.GET("/criteria", h.ListCriteria)
		admin.POST("/criteria", h.CreateCriterion)
		admin.DELETE("/criteria/:id", h.DeleteCriterion)
		admin.GET("/classes", h.ListClassSettings)
		admin.PUT("/classes/capacity", h.SetClassCapacity)
		admin.GET("/working-hours", h.GetWorkHours)
		admin.PUT("/working-hours", h.SetWorkHours)
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Attendance Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/import", h.ImportFile)
		api.POST("/records", h.ImportRows)
		api.GET("/records", h.ListRecords)
		api.POST("/validate", h.ValidateRows)
		api.GET("/stats", h.GetStats)
		api.GET("/occupancy", h.GetOccupancy)
		api.GET("/usage", h.GetMyUsage)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
