package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/voz-urbana/api-go/models"
	"github.com/voz-urbana/api-go/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens a per-test in-memory database with the production schema.
// TranslateError is on to match production, so the toggle handlers see
// gorm.ErrDuplicatedKey the same way they would against Postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Report{},
		&models.Comment{},
		&models.Like{},
		&models.Event{},
		&models.EventParticipant{},
		&models.EventPhoto{},
	))

	return db
}

// authAs injects session claims the way the auth middleware would.
func authAs(userID uint, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(utils.UserContextKey), &utils.UserClaims{
			UserID:   userID,
			Username: username,
		})
		c.Next()
	}
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedReport(t *testing.T, db *gorm.DB, userID uint) models.Report {
	t.Helper()

	report := models.Report{
		Title:    "Bache en Av. Juarez",
		Category: models.CategoryBache,
		Status:   models.StatusPendiente,
		Location: "Av. Juarez 100",
		S3Key:    fmt.Sprintf("photos/%d/seed.jpg", userID),
		UserID:   userID,
	}
	require.NoError(t, db.Create(&report).Error)
	return report
}
