package model

import (
	"time"

	userModel "specsnexus_backend/internals/features/users/model"
)

type EventModel struct {
	ID                uint                  `gorm:"primaryKey" json:"id"`
	Title             string                `gorm:"size:255;not null" json:"title"`
	Description       *string               `gorm:"size:2000" json:"description,omitempty"`
	Location          *string               `gorm:"size:255" json:"location,omitempty"`
	Date              *time.Time            `json:"date,omitempty"`
	RegistrationStart *time.Time            `json:"registration_start,omitempty"`
	RegistrationEnd   *time.Time            `json:"registration_end,omitempty"`
	ImageURL          *string               `gorm:"size:500" json:"image_url,omitempty"`
	Archived          bool                  `gorm:"not null;default:false" json:"archived"`
	Participants      []userModel.UserModel `gorm:"many2many:event_participants;" json:"participants,omitempty"`
	CreatedAt         time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

// Registration window states reported to clients.
const (
	RegistrationOpen       = "open"
	RegistrationNotStarted = "not_started"
	RegistrationClosed     = "closed"
)

func (e *EventModel) ParticipantCount() int {
	return len(e.Participants)
}

// RegistrationOpenAt reports whether joining is allowed at the given time.
// A missing bound leaves that side of the window open.
func (e *EventModel) RegistrationOpenAt(now time.Time) bool {
	if e.RegistrationStart != nil && now.Before(*e.RegistrationStart) {
		return false
	}
	if e.RegistrationEnd != nil && now.After(*e.RegistrationEnd) {
		return false
	}
	return true
}

func (e *EventModel) RegistrationStatusAt(now time.Time) string {
	if e.RegistrationStart != nil && now.Before(*e.RegistrationStart) {
		return RegistrationNotStarted
	}
	if e.RegistrationEnd != nil && now.After(*e.RegistrationEnd) {
		return RegistrationClosed
	}
	return RegistrationOpen
}
