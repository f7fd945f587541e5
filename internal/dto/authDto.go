package dto

import "comicdash/internal/platform/authclient"

// LoginDTO used for POST /auth/login
type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignupDTO used for POST /auth/signup
type SignupDTO struct {
	Name     string `json:"name" binding:"required,min=4,max=80"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SessionResponse is what login/signup return to the dashboard.
type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role,omitempty"`
}

func FromSession(s *authclient.Session) SessionResponse {
	return SessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		UserID:       s.User.ID,
		Email:        s.User.Email,
		Role:         s.User.Role,
	}
}
