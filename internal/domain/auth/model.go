// Package auth provides authentication and profile domain logic.
package auth

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
)

// User represents a registered pharmacy owner.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a new user. Email is stored lowercased so uniqueness
// checks are case-insensitive.
func NewUser(email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewFieldValidation("email", "email is required")
	}
	return nil
}

// CanLogin checks if user can login.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Profile holds the pharmacy owner's contact details and licensing documents.
type Profile struct {
	ID              id.ID     `db:"id" json:"id"`
	UserID          id.ID     `db:"user_id" json:"userId"`
	FullName        string    `db:"full_name" json:"fullName"`
	Phone           string    `db:"phone" json:"phone,omitempty"`
	Address         string    `db:"address" json:"address,omitempty"`
	GovIDType       string    `db:"gov_id_type" json:"govIdType,omitempty"`
	GovIDFile       string    `db:"gov_id_file" json:"govIdFile,omitempty"`
	DrugLicenseFile string    `db:"drug_license_file" json:"drugLicenseFile"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// NewProfile creates a profile for a user.
func NewProfile(userID id.ID, fullName string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        id.New(),
		UserID:    userID,
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Upload carries a file received from a multipart form.
type Upload struct {
	Filename string
	Size     int64
	Data     []byte
}

// MaxUploadSize limits document uploads to 8 MB.
const MaxUploadSize = 8 << 20

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ValidateUpload checks extension and size limits for a document upload.
// Returns a field-scoped validation error so the form can highlight the input.
func ValidateUpload(field string, u *Upload) error {
	if u == nil {
		return apperror.NewFieldValidation(field, "file is required")
	}
	ext := strings.ToLower(filepath.Ext(u.Filename))
	if !allowedUploadExts[ext] {
		return apperror.NewFieldValidation(field, "unsupported file type, allowed: .pdf, .jpg, .jpeg, .png").
			WithDetail("filename", u.Filename)
	}
	if u.Size > MaxUploadSize {
		return apperror.NewFieldValidation(field, "file too large, max 8 MB").
			WithDetail("size", u.Size)
	}
	return nil
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest for pharmacy owner registration.
// DrugLicense is required; the account is not created without it.
type RegisterRequest struct {
	FullName    string
	Email       string
	Password    string
	Phone       string
	Address     string
	DrugLicense *Upload
}

// ProfileUpdate carries editable profile fields.
// Nil uploads mean "keep the current document".
type ProfileUpdate struct {
	FullName    string
	Phone       string
	Address     string
	GovIDType   string
	GovID       *Upload
	DrugLicense *Upload
}

// ChangePasswordRequest for password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// AccessToken is returned on successful login.
type AccessToken struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
	TokenType string    `json:"tokenType"`
}
