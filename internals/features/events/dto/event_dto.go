package dto

import (
	"time"

	"specsnexus_backend/internals/features/events/model"
)

type CreateEventRequest struct {
	Title             string     `json:"title" validate:"required,max=255"`
	Description       *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location          *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	Date              *time.Time `json:"date,omitempty"`
	RegistrationStart *time.Time `json:"registration_start,omitempty"`
	RegistrationEnd   *time.Time `json:"registration_end,omitempty"`
}

type UpdateEventRequest struct {
	Title             *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Description       *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location          *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	Date              *time.Time `json:"date,omitempty"`
	RegistrationStart *time.Time `json:"registration_start,omitempty"`
	RegistrationEnd   *time.Time `json:"registration_end,omitempty"`
}

type EventResponse struct {
	ID                 uint       `json:"id"`
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	Location           *string    `json:"location,omitempty"`
	Date               *time.Time `json:"date,omitempty"`
	RegistrationStart  *time.Time `json:"registration_start,omitempty"`
	RegistrationEnd    *time.Time `json:"registration_end,omitempty"`
	RegistrationStatus string     `json:"registration_status"`
	ImageURL           *string    `json:"image_url,omitempty"`
	Archived           bool       `json:"archived"`
	ParticipantCount   int        `json:"participant_count"`
	IsParticipant      bool       `json:"is_participant"`
}

type ParticipantResponse struct {
	ID            uint    `json:"id"`
	FullName      string  `json:"full_name"`
	StudentNumber string  `json:"student_number"`
	Year          *string `json:"year,omitempty"`
	Block         *string `json:"block,omitempty"`
}

func ToEventResponse(m model.EventModel, now time.Time, isParticipant bool) EventResponse {
	return EventResponse{
		ID:                 m.ID,
		Title:              m.Title,
		Description:        m.Description,
		Location:           m.Location,
		Date:               m.Date,
		RegistrationStart:  m.RegistrationStart,
		RegistrationEnd:    m.RegistrationEnd,
		RegistrationStatus: m.RegistrationStatusAt(now),
		ImageURL:           m.ImageURL,
		Archived:           m.Archived,
		ParticipantCount:   m.ParticipantCount(),
		IsParticipant:      isParticipant,
	}
}
