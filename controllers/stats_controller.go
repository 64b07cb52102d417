package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voz-urbana/api-go/aggregation"
	"github.com/voz-urbana/api-go/models"
	"gorm.io/gorm"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GetStatistics returns the dashboard distributions. Both charts always carry
// their full bucket vocabulary, zeros included, so an empty database still
// renders complete axes.
func (sc *StatsController) GetStatistics(c *gin.Context) {
	var reports []models.Report
	if err := sc.DB.Order("created_at DESC").Limit(feedListCap).Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"total":      len(reports),
			"byStatus":   aggregation.CountByStatus(reports),
			"byCategory": aggregation.CountByCategory(reports),
		},
	})
}
