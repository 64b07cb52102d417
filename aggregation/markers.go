package aggregation

import (
	"github.com/voz-urbana/api-go/models"
)

// Marker colors by status, matching the palette the map UI renders.
const (
	colorAmber = "#f59e0b"
	colorBlue  = "#3b82f6"
	colorGreen = "#10b981"
	colorGray  = "#6b7280"
)

// Marker is one plottable point on the report map.
type Marker struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Status    string  `json:"status"`
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Color     string  `json:"color"`
	Glyph     string  `json:"glyph"`
}

// BoundingBox covers every plotted marker, for the initial viewport fit.
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// StatusColor maps a report status to its marker color. Unknown statuses
// plot gray rather than being dropped.
func StatusColor(status string) string {
	switch status {
	case models.StatusPendiente:
		return colorAmber
	case models.StatusEnProgreso:
		return colorBlue
	case models.StatusResuelto:
		return colorGreen
	default:
		return colorGray
	}
}

// CategoryGlyph maps a report category to the emoji the map pin shows.
func CategoryGlyph(category string) string {
	switch category {
	case models.CategoryBache:
		return "🚗"
	case models.CategoryAlumbrado:
		return "💡"
	case models.CategoryAgua:
		return "💧"
	case models.CategoryContaminacion:
		return "☁️"
	case models.CategoryBasura:
		return "🗑️"
	default:
		return "📍"
	}
}

// ProjectMarkers keeps only reports with both coordinates and decorates each
// with its color and glyph. An input with no geotagged rows yields an empty
// (non-nil) slice.
func ProjectMarkers(reports []models.Report) []Marker {
	markers := make([]Marker, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		if !r.HasCoordinates() {
			continue
		}
		status := r.DisplayStatus()
		markers = append(markers, Marker{
			ID:        r.ID,
			Title:     r.Title,
			Category:  r.Category,
			Status:    status,
			Location:  r.Location,
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
			Color:     StatusColor(status),
			Glyph:     CategoryGlyph(r.Category),
		})
	}
	return markers
}

// Bounds computes the box covering all markers. ok is false for an empty set.
func Bounds(markers []Marker) (box BoundingBox, ok bool) {
	if len(markers) == 0 {
		return BoundingBox{}, false
	}
	box = BoundingBox{
		MinLat: markers[0].Latitude,
		MaxLat: markers[0].Latitude,
		MinLng: markers[0].Longitude,
		MaxLng: markers[0].Longitude,
	}
	for _, m := range markers[1:] {
		if m.Latitude < box.MinLat {
			box.MinLat = m.Latitude
		}
		if m.Latitude > box.MaxLat {
			box.MaxLat = m.Latitude
		}
		if m.Longitude < box.MinLng {
			box.MinLng = m.Longitude
		}
		if m.Longitude > box.MaxLng {
			box.MaxLng = m.Longitude
		}
	}
	return box, true
}
