package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voz-urbana/api-go/aggregation"
	"github.com/voz-urbana/api-go/models"
	"gorm.io/gorm"
)

type MapController struct {
	DB *gorm.DB
}

func NewMapController(db *gorm.DB) *MapController {
	return &MapController{DB: db}
}

// GetMapMarkers projects the report collection into plottable map markers.
// Reports without coordinates are skipped; they still count in the status
// totals shown next to the map.
func (mc *MapController) GetMapMarkers(c *gin.Context) {
	query := mc.DB.Model(&models.Report{})
	if category := c.Query("category"); category != "" && category != "Todos" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" && status != "Todos" {
		query = query.Where("status = ?", status)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Limit(feedListCap).Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	markers := aggregation.ProjectMarkers(reports)

	var pendiente, enProceso, resuelto int
	for i := range reports {
		switch reports[i].DisplayStatus() {
		case models.StatusPendiente:
			pendiente++
		case models.StatusEnProgreso:
			enProceso++
		case models.StatusResuelto:
			resuelto++
		}
	}

	meta := gin.H{
		"totals": gin.H{
			"total":     len(reports),
			"pendiente": pendiente,
			"enProceso": enProceso,
			"resuelto":  resuelto,
		},
	}
	if box, ok := aggregation.Bounds(markers); ok {
		meta["bounds"] = box
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    markers,
		Meta:    meta,
	})
}
