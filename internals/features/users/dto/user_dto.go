package dto

import (
	"time"

	"specsnexus_backend/internals/features/users/model"
)

type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	StudentNumber string  `json:"student_number" validate:"required,max=50"`
	FullName      string  `json:"full_name" validate:"required,max=255"`
	Year          *string `json:"year,omitempty" validate:"omitempty,max=50"`
	Block         *string `json:"block,omitempty" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Year     *string `json:"year,omitempty" validate:"omitempty,max=50"`
	Block    *string `json:"block,omitempty" validate:"omitempty,max=50"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID            uint       `json:"id"`
	Email         string     `json:"email"`
	StudentNumber string     `json:"student_number"`
	FullName      string     `json:"full_name"`
	Year          *string    `json:"year,omitempty"`
	Block         *string    `json:"block,omitempty"`
	LastActive    *time.Time `json:"last_active,omitempty"`
}

func ToUserResponse(m model.UserModel) UserResponse {
	return UserResponse{
		ID:            m.ID,
		Email:         m.Email,
		StudentNumber: m.StudentNumber,
		FullName:      m.FullName,
		Year:          m.Year,
		Block:         m.Block,
		LastActive:    m.LastActive,
	}
}
