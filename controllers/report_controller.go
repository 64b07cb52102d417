package controllers

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/voz-urbana/api-go/aggregation"
	"github.com/voz-urbana/api-go/models"
	"github.com/voz-urbana/api-go/realtime"
	"github.com/voz-urbana/api-go/storage"
	"github.com/voz-urbana/api-go/utils"
	"gorm.io/gorm"
)

// feedListCap bounds any single feed load, matching the page size the list
// and stats views request.
const feedListCap = 500

const signedURLTTL = time.Hour

type ReportController struct {
	DB      *gorm.DB
	Storage *storage.Client
	Hub     *realtime.Hub
}

type CreateReportRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"max=500"`
	Category     string   `json:"category" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	S3Key        string   `json:"s3Key" binding:"required"`
	ThumbnailKey string   `json:"thumbnailKey"`
	MimeType     string   `json:"mimeType"`
	FileSize     int64    `json:"fileSize"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof='Pendiente' 'En progreso' 'Resuelto'"`
}

func NewReportController(db *gorm.DB, st *storage.Client, hub *realtime.Hub) *ReportController {
	return &ReportController{DB: db, Storage: st, Hub: hub}
}

// feedQuery applies the category/status filters as a pure intersection.
// "Todos" is the UI's no-filter sentinel.
func (rc *ReportController) feedQuery(c *gin.Context) *gorm.DB {
	q := rc.DB.Model(&models.Report{})
	if category := c.Query("category"); category != "" && category != "Todos" {
		q = q.Where("reports.category = ?", category)
	}
	if status := c.Query("status"); status != "" && status != "Todos" {
		q = q.Where("reports.status = ?", status)
	}
	return q
}

func feedSelect(q *gorm.DB, viewerID uint) *gorm.DB {
	return q.Select(`
		reports.*,
		(SELECT COUNT(*) FROM likes WHERE likes.report_id = reports.id) as likes_count,
		(SELECT COUNT(*) FROM comments WHERE comments.report_id = reports.id) as comments_count,
		EXISTS(SELECT 1 FROM likes WHERE likes.report_id = reports.id AND likes.user_id = ?) as user_has_liked
	`, viewerID)
}

// GetReports returns the render-ready feed: each report with author, counts,
// the viewer's like flag, and a signed image URL, newest first.
func (rc *ReportController) GetReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	q := rc.feedQuery(c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	var items []aggregation.ReportFeedItem
	result := feedSelect(q, utils.ViewerID(c)).
		Order("reports.created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	aggregation.ResolveImageURLs(c.Request.Context(), rc.Storage, items, signedURLTTL)
	aggregation.FinalizeFeed(items)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    items,
		Pagination: &PaginationMeta{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(pageSize))),
		},
	})
}

// GetMyReports is the profile view: the session user's reports plus the
// resolved/total tallies the profile header shows.
func (rc *ReportController) GetMyReports(c *gin.Context) {
	user := utils.GetUser(c)

	var items []aggregation.ReportFeedItem
	result := feedSelect(rc.DB.Model(&models.Report{}).Where("reports.user_id = ?", user.UserID), user.UserID).
		Order("reports.created_at DESC").
		Limit(feedListCap).
		Find(&items)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	aggregation.ResolveImageURLs(c.Request.Context(), rc.Storage, items, signedURLTTL)
	aggregation.FinalizeFeed(items)

	resolved := 0
	for i := range items {
		if items[i].Status == models.StatusResuelto {
			resolved++
		}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    items,
		Meta: gin.H{
			"totalReports": len(items),
			"resolved":     resolved,
		},
	})
}

// GetReportDetail returns one report with its comments and bumps the view
// counter.
func (rc *ReportController) GetReportDetail(c *gin.Context) {
	reportID := c.Param("id")

	var item aggregation.ReportFeedItem
	result := feedSelect(rc.DB.Model(&models.Report{}).Where("reports.id = ?", reportID), utils.ViewerID(c)).
		First(&item)
	if result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	// View counter is advisory; a failed bump never fails the read.
	if err := rc.DB.Model(&models.Report{}).Where("id = ?", item.ID).
		Update("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		logrus.WithError(err).WithField("report_id", item.ID).Warn("failed to increment view counter")
	} else {
		item.Views++
	}

	var comments []models.Comment
	if err := rc.DB.Where("report_id = ?", item.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	item.ImageURL = aggregation.SignedURL(c.Request.Context(), rc.Storage, item.S3Key, signedURLTTL)
	item.Status = item.DisplayStatus()

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"report":   item,
			"comments": comments,
		},
	})
}

// CreateReport validates the submission and persists it. The image must have
// been uploaded (and confirmed against the bucket) first; a report is never
// created for a missing object.
func (rc *ReportController) CreateReport(c *gin.Context) {
	user := utils.GetUser(c)

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude out of range"})
		return
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Longitude out of range"})
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude must be provided together"})
		return
	}

	if !rc.Storage.Exists(c.Request.Context(), req.S3Key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image not found in storage; upload it first"})
		return
	}

	report := models.Report{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Status:       models.StatusPendiente,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		S3Key:        req.S3Key,
		ThumbnailKey: req.ThumbnailKey,
		MimeType:     req.MimeType,
		FileSize:     req.FileSize,
		UserID:       user.UserID,
		Author:       user.Username,
		Tags:         pq.StringArray(extractHashtags(req.Description)),
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	rc.Hub.Notify()

	item := aggregation.ReportFeedItem{Report: report}
	item.ImageURL = aggregation.SignedURL(c.Request.Context(), rc.Storage, report.S3Key, signedURLTTL)

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    item,
		Message: "Report created successfully",
	})
}

// UpdateReportStatus lets the owning user move a report through the status
// lifecycle. Nothing else on the report is editable after creation.
func (rc *ReportController) UpdateReportStatus(c *gin.Context) {
	user := utils.GetUser(c)
	reportID := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var report models.Report
	if err := rc.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if report.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own reports"})
		return
	}

	if err := rc.DB.Model(&report).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	rc.Hub.Notify()

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"id": report.ID, "status": req.Status},
		Message: "Status updated successfully",
	})
}

// DeleteReport removes a report with its comments, likes and stored objects.
// Row deletes share one tx; object deletes run after commit and only log on
// failure, since the sweep job reclaims anything left behind.
func (rc *ReportController) DeleteReport(c *gin.Context) {
	user := utils.GetUser(c)
	reportID := c.Param("id")

	var report models.Report
	if err := rc.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if report.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own reports"})
		return
	}

	tx := rc.DB.Begin()

	if err := tx.Where("report_id = ?", report.ID).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete likes"})
		return
	}

	if err := tx.Where("report_id = ?", report.ID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comments"})
		return
	}

	if err := tx.Delete(&report).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	for _, key := range []string{report.S3Key, report.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := rc.Storage.Delete(c.Request.Context(), key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to delete stored object")
		}
	}

	rc.Hub.Notify()

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Report deleted successfully",
	})
}

// StreamFeed serves the live feed over SSE: one full snapshot on subscribe,
// then one per mutation. Each delivery replaces the previous list wholesale.
// Client disconnect ends the stream through the request context, so nothing
// writes after unmount.
func (rc *ReportController) StreamFeed(c *gin.Context) {
	viewerID := utils.ViewerID(c)
	updates, cancel := rc.Hub.Subscribe()
	defer cancel()

	ctx := c.Request.Context()

	send := func() bool {
		items, err := rc.feedSnapshot(c, viewerID)
		if err != nil {
			c.SSEvent("error", gin.H{"error": "Error fetching reports"})
			return false
		}
		c.SSEvent("snapshot", items)
		return true
	}

	c.Writer.Header().Set("Cache-Control", "no-cache")
	first := true
	c.Stream(func(w io.Writer) bool {
		if first {
			first = false
			return send()
		}
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-updates:
			if !ok {
				return false
			}
			return send()
		}
	})
}

func (rc *ReportController) feedSnapshot(c *gin.Context, viewerID uint) ([]aggregation.ReportFeedItem, error) {
	var items []aggregation.ReportFeedItem
	result := feedSelect(rc.feedQuery(c), viewerID).
		Order("reports.created_at DESC").
		Limit(feedListCap).
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	aggregation.ResolveImageURLs(c.Request.Context(), rc.Storage, items, signedURLTTL)
	aggregation.FinalizeFeed(items)
	return items, nil
}

// extractHashtags pulls #tags out of free text, the only tagging mechanism
// report submissions have.
func extractHashtags(content string) []string {
	words := strings.Fields(content)
	var hashtags []string
	for _, word := range words {
		if strings.HasPrefix(word, "#") {
			tag := strings.TrimPrefix(word, "#")
			if tag != "" {
				hashtags = append(hashtags, tag)
			}
		}
	}
	return hashtags
}
