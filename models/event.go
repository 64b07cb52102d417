package models

import (
	"time"

	"gorm.io/gorm"
)

// Event categories form a closed set, unlike report categories.
const (
	EventLimpieza      = "Limpieza"
	EventReforestacion = "Reforestacion"
	EventAsamblea      = "Asamblea"
	EventMarcha        = "Marcha"
	EventVoluntariado  = "Voluntariado"
	EventOtro          = "Otro"
)

// EventCategories lists every valid event category.
var EventCategories = []string{
	EventLimpieza,
	EventReforestacion,
	EventAsamblea,
	EventMarcha,
	EventVoluntariado,
	EventOtro,
}

// ValidEventCategory reports whether c is in the closed category set.
func ValidEventCategory(c string) bool {
	for _, v := range EventCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Event struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Location    string    `json:"location" gorm:"not null"`
	Latitude    *float64  `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude   *float64  `json:"longitude" gorm:"type:decimal(11,8)"`
	Category    string    `json:"category" gorm:"not null;type:varchar(30)"`

	OrganizerID uint   `json:"organizerId" gorm:"not null"`
	Organizer   string `json:"organizer"`

	MaxParticipants *int `json:"maxParticipants"`

	// Denormalized count carried over from the legacy schema. No mutation
	// path writes it; the attendee count is always derived from the
	// confirmed EventParticipant rows.
	AttendeesCount int `json:"-" gorm:"default:0"`

	Participants []EventParticipant `json:"-" gorm:"foreignKey:EventID"`
	Photos       []EventPhoto       `json:"-" gorm:"foreignKey:EventID"`
}
