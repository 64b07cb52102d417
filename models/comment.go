package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to a Report and is deleted with it.
type Comment struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReportID uint   `json:"reportId" gorm:"not null;index"`
	Report   Report `json:"-" gorm:"foreignKey:ReportID"`
	Content  string `json:"content" gorm:"not null;type:text"`
	UserID   uint   `json:"userId" gorm:"not null"`
	User     User   `json:"-" gorm:"foreignKey:UserID"`
	Author   string `json:"author"`
}
