package model

import "time"

type AnnouncementModel struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   string     `gorm:"size:5000;not null" json:"content"`
	ImageURL  *string    `gorm:"size:500" json:"image_url,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Archived  bool       `gorm:"not null;default:false" json:"archived"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AnnouncementModel) TableName() string {
	return "announcements"
}
