package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Report status values as stored. A row written before the column default
// existed may carry an empty status; DisplayStatus applies the read-side
// default without writing it back.
const (
	StatusPendiente  = "Pendiente"
	StatusEnProgreso = "En progreso"
	StatusResuelto   = "Resuelto"
)

// Categories offered by the UI. The column is an open string, so values
// outside this list are stored as-is.
const (
	CategoryBache         = "bache"
	CategoryAlumbrado     = "alumbrado"
	CategoryAgua          = "agua"
	CategoryContaminacion = "contaminacion"
	CategoryBasura        = "basura"
	CategoryOtro          = "otro"
)

type Report struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description" gorm:"type:text"`
	Category    string   `json:"category" gorm:"not null;type:varchar(50);index"`
	Status      string   `json:"status" gorm:"type:varchar(20);default:'Pendiente';index"`
	Location    string   `json:"location" gorm:"not null"`
	Latitude    *float64 `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude   *float64 `json:"longitude" gorm:"type:decimal(11,8)"`

	S3Key        string `json:"s3Key" gorm:"not null"`
	ThumbnailKey string `json:"thumbnailKey"`
	MimeType     string `json:"mimeType" gorm:"type:varchar(100)"`
	FileSize     int64  `json:"fileSize"`

	UserID uint   `json:"userId" gorm:"not null;index"`
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Author string `json:"author"`

	Views int            `json:"views" gorm:"default:0"`
	Tags  pq.StringArray `json:"tags" gorm:"type:text[]"`

	Comments []Comment `json:"-" gorm:"foreignKey:ReportID"`
	Likes    []Like    `json:"-" gorm:"foreignKey:ReportID"`
}

// DisplayStatus returns the stored status, defaulting empty values to
// Pendiente for display only.
func (r *Report) DisplayStatus() string {
	if r.Status == "" {
		return StatusPendiente
	}
	return r.Status
}

// HasCoordinates reports whether both latitude and longitude are present,
// which is what the map requires before plotting a marker.
func (r *Report) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
