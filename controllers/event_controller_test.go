package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voz-urbana/api-go/models"
	"gorm.io/gorm"
)

func eventRouter(db *gorm.DB, userID uint, username string) *gin.Engine {
	ec := NewEventController(db, nil)
	r := gin.New()
	r.Use(authAs(userID, username))
	r.POST("/api/events", ec.CreateEvent)
	r.GET("/api/events", ec.GetEvents)
	r.POST("/api/events/:id/attend", ec.ToggleAttendance)
	return r
}

func seedEvent(t *testing.T, db *gorm.DB, organizerID uint, maxParticipants *int) models.Event {
	t.Helper()

	event := models.Event{
		Title:           "Limpieza del parque",
		Date:            time.Now().Add(48 * time.Hour),
		Location:        "Parque Central",
		Category:        models.EventLimpieza,
		OrganizerID:     organizerID,
		MaxParticipants: maxParticipants,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func TestCreateEvent(t *testing.T) {
	t.Run("creates with organizer from session", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db, "organizadora")
		r := eventRouter(db, user.ID, user.Username)

		w := performJSON(t, r, http.MethodPost, "/api/events", gin.H{
			"title":    "Reforestacion en el cerro",
			"date":     time.Now().Add(72 * time.Hour).Format(time.RFC3339),
			"location": "Cerro de la Estrella",
			"category": models.EventReforestacion,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var event models.Event
		require.NoError(t, db.First(&event).Error)
		assert.Equal(t, user.ID, event.OrganizerID)
		assert.Equal(t, user.Username, event.Organizer)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db, "organizadora2")
		r := eventRouter(db, user.ID, user.Username)

		w := performJSON(t, r, http.MethodPost, "/api/events", gin.H{
			"title":    "Algo",
			"date":     time.Now().Format(time.RFC3339),
			"location": "Aqui",
			"category": "Fiesta",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db, "organizadora3")
		r := eventRouter(db, user.ID, user.Username)

		w := performJSON(t, r, http.MethodPost, "/api/events", gin.H{
			"title":    "Algo",
			"date":     "2026-13-40",
			"location": "Aqui",
			"category": models.EventOtro,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestToggleAttendance(t *testing.T) {
	t.Run("confirm then cancel", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db, "asistente")
		event := seedEvent(t, db, user.ID, nil)
		r := eventRouter(db, user.ID, user.Username)

		path := fmt.Sprintf("/api/events/%d/attend", event.ID)

		w := performJSON(t, r, http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["attending"])
		assert.Equal(t, float64(1), body["attendeesCount"])

		w = performJSON(t, r, http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body = decodeBody(t, w)
		assert.Equal(t, false, body["attending"])
		assert.Equal(t, float64(0), body["attendeesCount"])
	})

	t.Run("full event rejects new confirmations", func(t *testing.T) {
		db := setupTestDB(t)
		organizer := seedUser(t, db, "organizador")
		attendee := seedUser(t, db, "llegatarde")
		max := 1
		event := seedEvent(t, db, organizer.ID, &max)

		require.NoError(t, db.Create(&models.EventParticipant{
			EventID: event.ID,
			UserID:  organizer.ID,
			Status:  models.ParticipantConfirmado,
		}).Error)

		r := eventRouter(db, attendee.ID, attendee.Username)
		w := performJSON(t, r, http.MethodPost, fmt.Sprintf("/api/events/%d/attend", event.ID), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing event returns 404", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db, "asistente2")
		r := eventRouter(db, user.ID, user.Username)

		w := performJSON(t, r, http.MethodPost, "/api/events/9999/attend", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetEvents(t *testing.T) {
	t.Run("derived counts and viewer RSVP state", func(t *testing.T) {
		db := setupTestDB(t)
		viewer := seedUser(t, db, "espectadora")
		other := seedUser(t, db, "otra")
		event := seedEvent(t, db, other.ID, nil)

		// The stored counter is stale on purpose; only participant rows count.
		require.NoError(t, db.Model(&models.Event{}).Where("id = ?", event.ID).
			Update("attendees_count", 99).Error)

		require.NoError(t, db.Create(&models.EventParticipant{
			EventID: event.ID, UserID: viewer.ID, Status: models.ParticipantConfirmado,
		}).Error)
		require.NoError(t, db.Create(&models.EventParticipant{
			EventID: event.ID, UserID: other.ID, Status: models.ParticipantCancelado,
		}).Error)

		r := eventRouter(db, viewer.ID, viewer.Username)
		w := performJSON(t, r, http.MethodGet, "/api/events", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data := body["data"].([]interface{})
		require.Len(t, data, 1)

		item := data[0].(map[string]interface{})
		assert.Equal(t, float64(1), item["attendeesCount"])
		assert.Equal(t, true, item["isAttending"])
	})

	t.Run("events come back soonest first", func(t *testing.T) {
		db := setupTestDB(t)
		user := seedUser(t, db, "espectadora2")

		later := seedEvent(t, db, user.ID, nil)
		require.NoError(t, db.Model(&later).Update("date", time.Now().Add(96*time.Hour)).Error)
		sooner := seedEvent(t, db, user.ID, nil)
		require.NoError(t, db.Model(&sooner).Update("date", time.Now().Add(24*time.Hour)).Error)

		r := eventRouter(db, user.ID, user.Username)
		w := performJSON(t, r, http.MethodGet, "/api/events", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data := body["data"].([]interface{})
		require.Len(t, data, 2)

		first := data[0].(map[string]interface{})
		assert.Equal(t, float64(sooner.ID), first["id"])
	})
}
