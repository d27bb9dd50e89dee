package model

import "time"

type OfficerModel struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	FullName      string    `gorm:"size:255;not null" json:"full_name"`
	Position      string    `gorm:"size:100;not null" json:"position"`
	StudentNumber *string   `gorm:"size:50" json:"student_number,omitempty"`
	Archived      bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OfficerModel) TableName() string {
	return "officers"
}
