package dto

import (
	"time"

	"comicdash/internal/models"
)

// UpdateSubscriptionDTO used for PATCH /users/:user_id/subscription.
// Pointer so "false" is distinguishable from "field missing".
type UpdateSubscriptionDTO struct {
	Subscribed *bool `json:"subscribed" binding:"required"`
}

// UserResponse DTO for responses
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Subscribed bool      `json:"subscribed"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromUserModel(u models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Subscribed: u.Subscribed,
		CreatedAt:  u.CreatedAt,
	}
}
