package dto

import (
	"zenbill/internal/domain/auth"
)

// LoginRequest for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts the request to domain credentials.
func (r LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{Email: r.Email, Password: r.Password}
}

// RegisterRequest for POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ToAuthRequest converts the request to the domain shape.
func (r RegisterRequest) ToAuthRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// RefreshTokenRequest for POST /auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LoginResponse carries tokens plus the authenticated user.
type LoginResponse struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   *auth.User      `json:"user"`
}

// AssignRoleRequest for role management endpoints.
type AssignRoleRequest struct {
	RoleCode string `json:"roleCode" binding:"required"`
}

// CreateRoleRequest for POST /auth/roles.
type CreateRoleRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
