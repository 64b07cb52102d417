package models

import (
	"time"
)

// EventParticipant RSVP statuses.
const (
	ParticipantConfirmado = "Confirmado"
	ParticipantPendiente  = "Pendiente"
	ParticipantCancelado  = "Cancelado"
)

// EventParticipant is one user's RSVP to an event. The authoritative attendee
// count for an event is the number of rows with status Confirmado.
type EventParticipant struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	EventID  uint   `gorm:"not null;uniqueIndex:idx_participants_event_user" json:"eventId"`
	Event    Event  `gorm:"foreignKey:EventID" json:"-"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_participants_event_user" json:"userId"`
	UserName string `json:"userName"`
	Status   string `gorm:"not null;default:'Confirmado';type:varchar(20)" json:"status"`
}
