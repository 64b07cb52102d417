package models

import (
	"time"

	"gorm.io/gorm"
)

// EventPhoto is an image attached to an event after the fact (e.g. photos of
// a finished cleanup).
type EventPhoto struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EventID    uint   `gorm:"not null;index" json:"eventId"`
	Event      Event  `gorm:"foreignKey:EventID" json:"-"`
	S3Key      string `gorm:"not null" json:"s3Key"`
	MimeType   string `gorm:"type:varchar(100)" json:"mimeType"`
	FileSize   int64  `json:"fileSize"`
	UploaderID uint   `gorm:"not null" json:"uploaderId"`
}
