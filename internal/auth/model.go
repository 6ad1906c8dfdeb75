// File: internal/auth/model.go
package auth

import "plusone_backend/internal/user"

// SignupRequest is the payload for creating an account.
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the authenticated account.
type AuthResponse struct {
	Token string            `json:"token"`
	User  user.UserResponse `json:"user"`
}
