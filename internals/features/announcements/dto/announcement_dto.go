package dto

import "time"

type CreateAnnouncementRequest struct {
	Title   string     `json:"title" validate:"required,max=255"`
	Content string     `json:"content" validate:"required,max=5000"`
	Date    *time.Time `json:"date,omitempty"`
}

type UpdateAnnouncementRequest struct {
	Title   *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Content *string    `json:"content,omitempty" validate:"omitempty,max=5000"`
	Date    *time.Time `json:"date,omitempty"`
}
