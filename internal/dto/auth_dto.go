package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aerointel/aerointel-backend/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=analyst manager executive admin"`
}

func (r *RegisterRequest) ValidationMessage(errs validator.ValidationErrors) string {
	if hasTag(errs, "required") {
		return "Email, password, and name are required"
	}
	switch errs[0].Field() {
	case "email":
		return "Invalid email format"
	case "password":
		return "Password must be at least 6 characters long"
	case "role":
		return "Invalid role. Must be one of: analyst, manager, executive, admin"
	}
	return ""
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) ValidationMessage(validator.ValidationErrors) string {
	return "Email and password are required"
}

type AuthResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// UserResponse is a user without its password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	IsActive  bool        `json:"isActive"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		IsActive:  u.IsActive,
	}
}
