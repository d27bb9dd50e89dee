package dto

import "specsnexus_backend/internals/features/officers/model"

type OfficerLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateOfficerRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	FullName      string  `json:"full_name" validate:"required,max=255"`
	Position      string  `json:"position" validate:"required,max=100"`
	StudentNumber *string `json:"student_number,omitempty" validate:"omitempty,max=50"`
}

type UpdateOfficerRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Position *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// PromoteRequest appoints existing students as officers in one call.
type PromoteRequest struct {
	UserIDs  []uint `json:"user_ids" validate:"required,min=1,dive,gt=0"`
	Position string `json:"position" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type OfficerLoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	Officer     OfficerResponse `json:"officer"`
}

type OfficerResponse struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	Position      string  `json:"position"`
	StudentNumber *string `json:"student_number,omitempty"`
	Archived      bool    `json:"archived"`
}

func ToOfficerResponse(m model.OfficerModel) OfficerResponse {
	return OfficerResponse{
		ID:            m.ID,
		Email:         m.Email,
		FullName:      m.FullName,
		Position:      m.Position,
		StudentNumber: m.StudentNumber,
		Archived:      m.Archived,
	}
}

func ToOfficerResponses(items []model.OfficerModel) []OfficerResponse {
	out := make([]OfficerResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToOfficerResponse(item))
	}
	return out
}
