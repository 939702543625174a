package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/importer"
)

// ValidateRows dry-runs a JSON import without replacing the session, so a
// dashboard can warn about unparseable cells before committing an upload.
func (h *Handler) ValidateRows(c *gin.Context) {
	var rows []map[string]any
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one attendance row is required",
		})
		return
	}

	result, err := importer.FromObjects(rows)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	// A record whose times all failed to parse contributes zero minutes
	// everywhere; surface those so the operator can fix the sheet.
	var zeroDuration []string
	for _, r := range result.Records {
		if r.ActualCareMinutes == 0 {
			zeroDuration = append(zeroDuration, r.StudentName)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"record_count":  len(result.Records),
			"skipped_rows":  result.SkippedRows,
			"student_count": countStudents(result.Records),
			"zero_duration": zeroDuration,
		},
	})
}
