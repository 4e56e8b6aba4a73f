package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Account   string    `json:"account"`
	Nickname  *string   `json:"nickname,omitempty"`
	Avatar    *string   `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	DB              string `json:"db"`
	AssessmentCount int    `json:"assessment_count"`
}
