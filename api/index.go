package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/auth"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/database"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/handlers"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	// Initialize DB
	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := handlers.NewHandler(db)

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Care Class Attendance API (Vercel)",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

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
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
