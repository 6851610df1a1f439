package dto

import (
	"time"

	"medstock/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// ChangePasswordRequest for password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// --- Response DTOs ---

// TokenResponse represents the access token response.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// FromAccessToken creates response from domain token.
func FromAccessToken(t *auth.AccessToken) *TokenResponse {
	return &TokenResponse{
		AccessToken: t.Token,
		ExpiresAt:   t.ExpiresAt,
		TokenType:   t.TokenType,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUser creates response from domain user.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ProfileResponse represents the pharmacy owner's profile.
type ProfileResponse struct {
	FullName        string `json:"fullName"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	GovIDType       string `json:"govIdType,omitempty"`
	GovIDFile       string `json:"govIdFile,omitempty"`
	DrugLicenseFile string `json:"drugLicenseFile"`
}

// FromProfile creates response from domain profile.
func FromProfile(p *auth.Profile) *ProfileResponse {
	return &ProfileResponse{
		FullName:        p.FullName,
		Phone:           p.Phone,
		Address:         p.Address,
		GovIDType:       p.GovIDType,
		GovIDFile:       p.GovIDFile,
		DrugLicenseFile: p.DrugLicenseFile,
	}
}

// AccountResponse bundles user and profile.
type AccountResponse struct {
	User    *UserResponse    `json:"user"`
	Profile *ProfileResponse `json:"profile"`
}

// LoginResponse includes the token and user info.
type LoginResponse struct {
	Token *TokenResponse `json:"token"`
	User  *UserResponse  `json:"user"`
}
