package model

import (
	"time"

	userModel "specsnexus_backend/internals/features/users/model"
)

type ClearanceModel struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	UserID        uint                `gorm:"not null;index" json:"user_id"`
	User          userModel.UserModel `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Requirement   string              `gorm:"size:100;not null;index" json:"requirement"`
	Status        string              `gorm:"size:50;not null;default:'Not Yet Cleared'" json:"status"`
	PaymentStatus string              `gorm:"size:50;not null;default:'Not Paid'" json:"payment_status"`
	Amount        float64             `gorm:"not null;default:0" json:"amount"`
	PaymentMethod *string             `gorm:"size:50" json:"payment_method,omitempty"`
	PaymentDate   *time.Time          `json:"payment_date,omitempty"`
	ApprovalDate  *time.Time          `json:"approval_date,omitempty"`
	DenialReason  *string             `gorm:"size:500" json:"denial_reason,omitempty"`
	ReceiptPath   *string             `gorm:"size:500" json:"receipt_path,omitempty"`
	Archived      bool                `gorm:"not null;default:false" json:"archived"`
	LastUpdated   time.Time           `gorm:"autoUpdateTime" json:"last_updated"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (ClearanceModel) TableName() string {
	return "clearances"
}
