package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voz-urbana/api-go/models"
	"github.com/voz-urbana/api-go/realtime"
	"github.com/voz-urbana/api-go/utils"
	"gorm.io/gorm"
)

type InteractionController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func NewInteractionController(db *gorm.DB, hub *realtime.Hub) *InteractionController {
	return &InteractionController{DB: db, Hub: hub}
}

// ToggleLike flips the (report, user) like state. The lookup returns every
// matching row and the delete pass removes them all, so duplicates that
// predate the unique index collapse to a single clean state. On the create
// side a unique-index violation means another request won the race, which is
// the same end state the caller asked for.
func (ic *InteractionController) ToggleLike(c *gin.Context) {
	reportID := c.Param("id")
	user := utils.GetUser(c)

	var report models.Report
	if err := ic.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var existing []models.Like
	if err := ic.DB.Where("report_id = ? AND user_id = ?", report.ID, user.UserID).Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up like state"})
		return
	}

	liked := false
	if len(existing) == 0 {
		like := models.Like{
			ReportID:  report.ID,
			UserID:    user.UserID,
			CreatedAt: time.Now(),
		}
		err := ic.DB.Create(&like).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like report"})
			return
		}
		liked = true
	} else {
		if err := ic.DB.Where("report_id = ? AND user_id = ?", report.ID, user.UserID).Delete(&models.Like{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike report"})
			return
		}
	}

	// Recount so the client commits the confirmed state, not its local guess.
	// A failed recount must not be served as zero.
	var likesCount int64
	if err := ic.DB.Model(&models.Like{}).Where("report_id = ?", report.ID).Count(&likesCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count likes"})
		return
	}

	ic.Hub.Notify()

	c.JSON(http.StatusOK, gin.H{
		"liked":      liked,
		"likesCount": likesCount,
	})
}

// AddComment attaches a comment to a report.
func (ic *InteractionController) AddComment(c *gin.Context) {
	reportID := c.Param("id")
	user := utils.GetUser(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var report models.Report
	if err := ic.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	comment := models.Comment{
		ReportID: report.ID,
		Content:  req.Content,
		UserID:   user.UserID,
		Author:   user.Username,
	}

	if err := ic.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	ic.Hub.Notify()

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    comment,
	})
}

// GetComments lists a report's comments oldest first.
func (ic *InteractionController) GetComments(c *gin.Context) {
	reportID := c.Param("id")

	var report models.Report
	if err := ic.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var comments []models.Comment
	if err := ic.DB.Where("report_id = ?", report.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    comments,
	})
}

// DeleteComment removes the caller's own comment.
func (ic *InteractionController) DeleteComment(c *gin.Context) {
	commentID := c.Param("id")
	user := utils.GetUser(c)

	var comment models.Comment
	if err := ic.DB.First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := ic.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	ic.Hub.Notify()

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Comment deleted successfully",
	})
}
