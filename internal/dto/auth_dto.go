package dto

import (
	"time"

	"github.com/noah-isme/classroom-api/internal/models"
)

// RegisterRequest describes the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin teacher student"`
}

// LoginRequest describes the payload for authenticating an account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public projection of a user; it never carries the
// password hash.
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Email:     model.Email,
		FullName:  model.FullName,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
	}
}

// LoginResponse carries the issued bearer token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
