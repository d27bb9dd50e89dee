package dto

import (
	"time"

	"specsnexus_backend/internals/features/membership/clearances/model"
)

type RollOutRequest struct {
	Requirement string  `json:"requirement" validate:"required,max=100"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

type UpdateAmountRequest struct {
	Requirement string  `json:"requirement" validate:"required,max=100"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

type VerifyRequest struct {
	Action       string  `json:"action" validate:"required,oneof=approve deny"`
	DenialReason *string `json:"denial_reason,omitempty" validate:"omitempty,max=500"`
}

type RollOutResponse struct {
	Requirement string `json:"requirement"`
	Created     int64  `json:"created"`
	Skipped     int64  `json:"skipped"`
}

type ClearanceResponse struct {
	ID            uint       `json:"id"`
	UserID        uint       `json:"user_id"`
	FullName      string     `json:"full_name,omitempty"`
	StudentNumber string     `json:"student_number,omitempty"`
	Year          *string    `json:"year,omitempty"`
	Requirement   string     `json:"requirement"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	Amount        float64    `json:"amount"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	ApprovalDate  *time.Time `json:"approval_date,omitempty"`
	DenialReason  *string    `json:"denial_reason,omitempty"`
	ReceiptURL    *string    `json:"receipt_url,omitempty"`
	Archived      bool       `json:"archived"`
	LastUpdated   time.Time  `json:"last_updated"`
}

func ToClearanceResponse(m model.ClearanceModel) ClearanceResponse {
	resp := ClearanceResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		Requirement:   m.Requirement,
		Status:        m.Status,
		PaymentStatus: m.PaymentStatus,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		PaymentDate:   m.PaymentDate,
		ApprovalDate:  m.ApprovalDate,
		DenialReason:  m.DenialReason,
		ReceiptURL:    m.ReceiptPath,
		Archived:      m.Archived,
		LastUpdated:   m.LastUpdated,
	}
	if m.User.ID != 0 {
		resp.FullName = m.User.FullName
		resp.StudentNumber = m.User.StudentNumber
		resp.Year = m.User.Year
	}
	return resp
}

func ToClearanceResponses(items []model.ClearanceModel) []ClearanceResponse {
	out := make([]ClearanceResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToClearanceResponse(item))
	}
	return out
}
