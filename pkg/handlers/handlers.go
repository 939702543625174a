package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/attendance"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/auth"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/database"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/importer"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/store"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB      *gorm.DB
	Records *store.RecordStore
}

// NewHandler wires a handler with an empty record session.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Records: store.NewRecordStore()}
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the API key for data routes using HMAC
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		userID, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      userID,
			RateLimit: 10000,
		})

		c.Set("apiKey", &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// ImportFile handles xlsx/csv attendance uploads, replacing the current
// record session with the parsed rows.
func (h *Handler) ImportFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	result, err := importer.FromUpload(fileHeader.Filename, data)
	if err != nil {
		c.JSON(importErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.Records.Replace(result.Records)
	h.RecordUsage(c, len(result.Records), countStudents(result.Records))

	c.JSON(http.StatusOK, models.ImportResponse{
		RecordCount: len(result.Records),
		SkippedRows: result.SkippedRows,
		Records:     result.Records,
	})
}

// ImportRows handles JSON row imports. Cell values may be strings or numbers
// (spreadsheet numeric time encoding), keyed by the same headers as file
// uploads.
func (h *Handler) ImportRows(c *gin.Context) {
	var rows []map[string]any
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := importer.FromObjects(rows)
	if err != nil {
		c.JSON(importErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.Records.Replace(result.Records)
	h.RecordUsage(c, len(result.Records), countStudents(result.Records))

	c.JSON(http.StatusOK, models.ImportResponse{
		RecordCount: len(result.Records),
		SkippedRows: result.SkippedRows,
		Records:     result.Records,
	})
}

// ListRecords returns the current record session.
func (h *Handler) ListRecords(c *gin.Context) {
	records := h.Records.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"records": records,
	})
}

// GetStats aggregates the current session into per-student statistics with
// screening flags. Criteria are read once up front so an admin edit cannot
// land mid-aggregation.
func (h *Handler) GetStats(c *gin.Context) {
	criteria, err := database.ListCriteria(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load screening criteria"})
		return
	}

	stats := attendance.Aggregate(h.Records.Snapshot(), criteria)
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetOccupancy projects hourly peak occupancy for a class and weekday.
// Capacity and working hours are snapshotted before projecting.
func (h *Handler) GetOccupancy(c *gin.Context) {
	className := c.DefaultQuery("class", attendance.AllClasses)
	weekday := c.Query("weekday")
	if weekday == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday is required"})
		return
	}

	wh := database.GetWorkHours(h.DB)
	capacity := database.GetClassCapacity(h.DB, className)

	slots := attendance.Project(h.Records.Snapshot(), attendance.Projection{
		ClassName: className,
		Weekday:   weekday,
		WorkStart: wh.Start,
		WorkEnd:   wh.End,
		Capacity:  capacity,
	})

	c.JSON(http.StatusOK, gin.H{
		"class":    className,
		"weekday":  weekday,
		"capacity": capacity,
		"slots":    slots,
	})
}

func importErrorStatus(err error) int {
	if errors.Is(err, importer.ErrUnsupportedFile) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusBadRequest
}

func countStudents(records []models.StudentRecord) int {
	seen := make(map[string]map[string]bool)
	n := 0
	for _, r := range records {
		if seen[r.ClassName] == nil {
			seen[r.ClassName] = make(map[string]bool)
		}
		if !seen[r.ClassName][r.StudentName] {
			seen[r.ClassName][r.StudentName] = true
			n++
		}
	}
	return n
}
