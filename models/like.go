package models

import (
	"time"
)

// Like marks that a user endorsed a report. The composite unique index keeps
// rapid double-toggles from leaving duplicate rows; the delete path still
// collapses any duplicates that predate the index.
type Like struct {
	ID        uint      `gorm:"column:like_id;primaryKey;autoIncrement" json:"id"`
	ReportID  uint      `gorm:"column:report_id;not null;uniqueIndex:idx_likes_report_user" json:"reportId"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_likes_report_user" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Report Report `gorm:"foreignKey:ReportID" json:"-"`
}
