package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voz-urbana/api-go/models"
)

func ptr(f float64) *float64 { return &f }

func TestProjectMarkers(t *testing.T) {
	t.Run("skips reports without coordinates", func(t *testing.T) {
		reports := []models.Report{
			{ID: 1, Title: "Bache en la esquina", Category: models.CategoryBache, Status: models.StatusPendiente, Latitude: ptr(19.43), Longitude: ptr(-99.13)},
			{ID: 2, Title: "Sin ubicacion", Category: models.CategoryAgua},
			{ID: 3, Title: "Solo latitud", Category: models.CategoryAgua, Latitude: ptr(19.50)},
		}

		markers := ProjectMarkers(reports)

		assert.Len(t, markers, 1)
		assert.Equal(t, uint(1), markers[0].ID)
		assert.Equal(t, 19.43, markers[0].Latitude)
	})

	t.Run("decorates with color and glyph", func(t *testing.T) {
		reports := []models.Report{
			{ID: 1, Category: models.CategoryAlumbrado, Status: models.StatusEnProgreso, Latitude: ptr(1), Longitude: ptr(2)},
		}

		markers := ProjectMarkers(reports)

		assert.Equal(t, "#3b82f6", markers[0].Color)
		assert.Equal(t, "💡", markers[0].Glyph)
	})

	t.Run("empty status plots as Pendiente", func(t *testing.T) {
		reports := []models.Report{
			{ID: 1, Category: models.CategoryBache, Status: "", Latitude: ptr(1), Longitude: ptr(2)},
		}

		markers := ProjectMarkers(reports)

		assert.Equal(t, models.StatusPendiente, markers[0].Status)
		assert.Equal(t, "#f59e0b", markers[0].Color)
	})

	t.Run("no geotagged reports yields empty non-nil slice", func(t *testing.T) {
		markers := ProjectMarkers([]models.Report{{ID: 1}})
		assert.NotNil(t, markers)
		assert.Empty(t, markers)
	})
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#f59e0b", StatusColor(models.StatusPendiente))
	assert.Equal(t, "#3b82f6", StatusColor(models.StatusEnProgreso))
	assert.Equal(t, "#10b981", StatusColor(models.StatusResuelto))
	assert.Equal(t, "#6b7280", StatusColor("algo raro"))
}

func TestCategoryGlyph(t *testing.T) {
	assert.Equal(t, "🚗", CategoryGlyph(models.CategoryBache))
	assert.Equal(t, "🗑️", CategoryGlyph(models.CategoryBasura))
	assert.Equal(t, "📍", CategoryGlyph("desconocida"))
}

func TestBounds(t *testing.T) {
	t.Run("empty set reports not ok", func(t *testing.T) {
		_, ok := Bounds(nil)
		assert.False(t, ok)
	})

	t.Run("single marker collapses to a point", func(t *testing.T) {
		box, ok := Bounds([]Marker{{Latitude: 19.43, Longitude: -99.13}})
		assert.True(t, ok)
		assert.Equal(t, 19.43, box.MinLat)
		assert.Equal(t, 19.43, box.MaxLat)
		assert.Equal(t, -99.13, box.MinLng)
		assert.Equal(t, -99.13, box.MaxLng)
	})

	t.Run("box covers all markers", func(t *testing.T) {
		box, ok := Bounds([]Marker{
			{Latitude: 19.40, Longitude: -99.20},
			{Latitude: 19.50, Longitude: -99.10},
			{Latitude: 19.45, Longitude: -99.15},
		})
		assert.True(t, ok)
		assert.Equal(t, 19.40, box.MinLat)
		assert.Equal(t, 19.50, box.MaxLat)
		assert.Equal(t, -99.20, box.MinLng)
		assert.Equal(t, -99.10, box.MaxLng)
	})
}
