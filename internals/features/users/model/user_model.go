package model

import "time"

type UserModel struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Email         string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password      string     `gorm:"size:255;not null" json:"-"`
	StudentNumber string     `gorm:"size:50;not null;uniqueIndex" json:"student_number"`
	FullName      string     `gorm:"size:255;not null" json:"full_name"`
	Year          *string    `gorm:"size:50" json:"year,omitempty"`
	Block         *string    `gorm:"size:50" json:"block,omitempty"`
	LastActive    *time.Time `json:"last_active,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
