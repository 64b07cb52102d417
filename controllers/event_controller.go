package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voz-urbana/api-go/aggregation"
	"github.com/voz-urbana/api-go/models"
	"github.com/voz-urbana/api-go/storage"
	"github.com/voz-urbana/api-go/utils"
	"gorm.io/gorm"
)

var errEventFull = errors.New("event is full")

type EventController struct {
	DB      *gorm.DB
	Storage *storage.Client
}

type CreateEventRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description" binding:"max=500"`
	Date            string   `json:"date" binding:"required"`
	Location        string   `json:"location" binding:"required"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Category        string   `json:"category" binding:"required"`
	MaxParticipants *int     `json:"maxParticipants"`
}

type ConfirmEventPhotoRequest struct {
	Key      string `json:"key" binding:"required"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// EventListItem is one render-ready entry for the events page: the event row
// plus the derived attendee count and the caller's RSVP state.
type EventListItem struct {
	models.Event
	AttendeesCount int  `json:"attendeesCount"`
	IsAttending    bool `json:"isAttending"`
}

func NewEventController(db *gorm.DB, storageClient *storage.Client) *EventController {
	return &EventController{DB: db, Storage: storageClient}
}

// CreateEvent registers a new community event organized by the caller.
func (ec *EventController) CreateEvent(c *gin.Context) {
	user := utils.GetUser(c)

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidEventCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event category"})
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be RFC3339"})
		return
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude must be provided together"})
		return
	}

	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxParticipants must be positive"})
		return
	}

	event := models.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            date,
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Category:        req.Category,
		OrganizerID:     user.UserID,
		Organizer:       user.Username,
		MaxParticipants: req.MaxParticipants,
	}

	if err := ec.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    event,
	})
}

// GetEvents lists events soonest first with derived attendee counts and the
// caller's RSVP state. Anonymous callers get isAttending=false throughout.
func (ec *EventController) GetEvents(c *gin.Context) {
	viewerID := utils.ViewerID(c)

	var events []models.Event
	if err := ec.DB.Order("date ASC").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching events"})
		return
	}

	var participants []models.EventParticipant
	if len(events) > 0 {
		ids := make([]uint, len(events))
		for i := range events {
			ids[i] = events[i].ID
		}
		if err := ec.DB.Where("event_id IN ? AND status = ?", ids, models.ParticipantConfirmado).Find(&participants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching participants"})
			return
		}
	}

	counts := aggregation.CountConfirmed(participants)
	attending := aggregation.ConfirmedEventIDs(participants, viewerID)

	items := make([]EventListItem, len(events))
	for i := range events {
		items[i] = EventListItem{
			Event:          events[i],
			AttendeesCount: counts[events[i].ID],
			IsAttending:    attending[events[i].ID],
		}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    items,
	})
}

// ToggleAttendance flips the caller's confirmed RSVP on an event. Like the
// report like toggle, duplicate rows collapse on the cancel pass and a
// unique-index violation on confirm counts as success.
func (ec *EventController) ToggleAttendance(c *gin.Context) {
	eventID := c.Param("id")
	user := utils.GetUser(c)

	var event models.Event
	if err := ec.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var existing []models.EventParticipant
	if err := ec.DB.Where("event_id = ? AND user_id = ?", event.ID, user.UserID).Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up attendance"})
		return
	}

	attending := false
	if len(existing) == 0 {
		err := ec.DB.Transaction(func(tx *gorm.DB) error {
			if event.MaxParticipants != nil {
				// Touching the event row takes its write lock, so
				// concurrent confirmations serialize on the capacity
				// check instead of both squeezing into the last slot.
				if err := tx.Model(&models.Event{}).Where("id = ?", event.ID).
					Update("updated_at", time.Now()).Error; err != nil {
					return err
				}
				var confirmed int64
				if err := tx.Model(&models.EventParticipant{}).
					Where("event_id = ? AND status = ?", event.ID, models.ParticipantConfirmado).
					Count(&confirmed).Error; err != nil {
					return err
				}
				if confirmed >= int64(*event.MaxParticipants) {
					return errEventFull
				}
			}

			participant := models.EventParticipant{
				EventID:  event.ID,
				UserID:   user.UserID,
				UserName: user.Username,
				Status:   models.ParticipantConfirmado,
			}
			if err := tx.Create(&participant).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			return nil
		})
		if errors.Is(err, errEventFull) {
			c.JSON(http.StatusConflict, gin.H{"error": "Event is full"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm attendance"})
			return
		}
		attending = true
	} else {
		if err := ec.DB.Where("event_id = ? AND user_id = ?", event.ID, user.UserID).Delete(&models.EventParticipant{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel attendance"})
			return
		}
	}

	var attendeesCount int64
	if err := ec.DB.Model(&models.EventParticipant{}).
		Where("event_id = ? AND status = ?", event.ID, models.ParticipantConfirmado).
		Count(&attendeesCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count attendees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attending":      attending,
		"attendeesCount": attendeesCount,
	})
}

// ConfirmEventPhoto records an uploaded photo against an event once the bytes
// are verified to be in the bucket.
func (ec *EventController) ConfirmEventPhoto(c *gin.Context) {
	eventID := c.Param("id")
	user := utils.GetUser(c)

	var req ConfirmEventPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event
	if err := ec.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	head, err := ec.Storage.Head(c.Request.Context(), req.Key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Uploaded file not found in storage"})
		return
	}

	photo := models.EventPhoto{
		EventID:    event.ID,
		S3Key:      req.Key,
		MimeType:   req.MimeType,
		FileSize:   req.FileSize,
		UploaderID: user.UserID,
	}
	if photo.MimeType == "" && head.ContentType != nil {
		photo.MimeType = *head.ContentType
	}
	if photo.FileSize == 0 && head.ContentLength != nil {
		photo.FileSize = *head.ContentLength
	}

	if err := ec.DB.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save event photo"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    photo,
	})
}

// ListEventPhotos returns an event's photos with signed fetch URLs. A photo
// whose signing fails is returned without a URL rather than failing the list.
func (ec *EventController) ListEventPhotos(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := ec.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var photos []models.EventPhoto
	if err := ec.DB.Where("event_id = ?", event.ID).Order("created_at DESC").Find(&photos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching event photos"})
		return
	}

	type eventPhotoItem struct {
		models.EventPhoto
		ImageURL string `json:"imageUrl"`
	}

	ctx := c.Request.Context()
	items := make([]eventPhotoItem, len(photos))
	for i := range photos {
		items[i] = eventPhotoItem{
			EventPhoto: photos[i],
			ImageURL:   aggregation.SignedURL(ctx, ec.Storage, photos[i].S3Key, signedURLTTL),
		}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    items,
	})
}
