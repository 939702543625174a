package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/auth"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/database"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
)

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// ListCriteria returns all configured screening criteria
func (h *Handler) ListCriteria(c *gin.Context) {
	var criteria []database.ScreeningCriterion
	h.DB.Order("id").Find(&criteria)
	c.JSON(http.StatusOK, gin.H{"criteria": criteria})
}

// CreateCriterion adds a screening criterion
func (h *Handler) CreateCriterion(c *gin.Context) {
	var req struct {
		Type     string `json:"type"`
		Operator string `json:"operator"`
		Value    int    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type != models.CriterionAvgStay && req.Type != models.CriterionAbsenceDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown criterion type: " + req.Type})
		return
	}
	if req.Operator != models.OperatorGreater && req.Operator != models.OperatorLess {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown operator: " + req.Operator})
		return
	}
	if req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be positive"})
		return
	}

	criterion := database.ScreeningCriterion{
		Type:     req.Type,
		Operator: req.Operator,
		Value:    req.Value,
	}
	if err := h.DB.Create(&criterion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create criterion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"criterion": criterion})
}

// DeleteCriterion removes a screening criterion
func (h *Handler) DeleteCriterion(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.ScreeningCriterion{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete criterion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Criterion deleted"})
}

// ListClassSettings returns all per-class capacity settings
func (h *Handler) ListClassSettings(c *gin.Context) {
	var settings []database.ClassSetting
	h.DB.Order("class_name").Find(&settings)
	c.JSON(http.StatusOK, gin.H{
		"default_capacity": database.DefaultCapacity,
		"classes":          settings,
	})
}

// SetClassCapacity upserts the capacity for one class
func (h *Handler) SetClassCapacity(c *gin.Context) {
	var req struct {
		ClassName string `json:"class_name"`
		Capacity  int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ClassName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_name is required"})
		return
	}
	if req.Capacity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be positive"})
		return
	}

	setting, err := database.SetClassCapacity(h.DB, req.ClassName, req.Capacity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save class setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": setting})
}

// GetWorkHours returns the configured working-hour bounds
func (h *Handler) GetWorkHours(c *gin.Context) {
	wh := database.GetWorkHours(h.DB)
	c.JSON(http.StatusOK, gin.H{"start": wh.Start, "end": wh.End})
}

// SetWorkHours updates the working-hour bounds
func (h *Handler) SetWorkHours(c *gin.Context) {
	var req struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Start == "" || req.End == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required"})
		return
	}

	wh, err := database.SetWorkHours(h.DB, req.Start, req.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save working hours"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": wh.Start, "end": wh.End})
}

// GenerateKey creates a new API key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 10000
	}

	key := auth.GenerateHMACKey(req.Name)

	preview := "****"
	if len(key) > 8 {
		preview = key[:3] + "..." + key[len(key)-4:]
	}

	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: preview,
		RateLimit:  req.RateLimit,
	}

	if err := h.DB.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	h.DB.Find(&keys)
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.APIKey{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the rate limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	if err := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id := c.Param("id")
	var usage []database.APIUsage
	h.DB.Where("key_id = ?", id).Order("date desc").Limit(30).Find(&usage)
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}
