package model

import "time"

// QRCodeModel stores the active payment QR image for a cashless channel.
// One row per payment type; uploads replace the image in place.
type QRCodeModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PaymentType string    `gorm:"size:50;not null;uniqueIndex" json:"payment_type"`
	ImageURL    string    `gorm:"size:500;not null" json:"image_url"`
	AccountName *string   `gorm:"size:255" json:"account_name,omitempty"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QRCodeModel) TableName() string {
	return "payment_qrcodes"
}
