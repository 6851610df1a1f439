// Package auth provides authentication and profile domain logic.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/core/tx"
	"medstock/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// Service provides registration, login and profile management.
type Service struct {
	userRepo    UserRepository
	profileRepo ProfileRepository
	documents   DocumentStore
	txManager   tx.Manager
	jwtService  *JWTService
	config      ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo UserRepository,
	profileRepo ProfileRepository,
	documents DocumentStore,
	txManager tx.Manager,
	jwtService *JWTService,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		documents:   documents,
		txManager:   txManager,
		jwtService:  jwtService,
		config:      config,
	}
}

// Register creates a pharmacy owner account with its profile.
// The drug license document is required; nothing persists unless every
// validation passes and the user+profile insert commits.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, *Profile, error) {
	if err := s.validateRegister(req); err != nil {
		return nil, nil, err
	}

	email := NormalizeEmail(req.Email)
	exists, err := s.userRepo.ExistsEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, nil, apperror.NewDuplicate("user", "email", email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(email, string(passwordHash))
	profile := NewProfile(user.ID, strings.TrimSpace(req.FullName))
	profile.Phone = req.Phone
	profile.Address = req.Address

	licensePath, err := s.documents.Save(ctx, user.ID, "drug_license", req.DrugLicense)
	if err != nil {
		return nil, nil, fmt.Errorf("store drug license: %w", err)
	}
	profile.DrugLicenseFile = licensePath

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		// Transaction rolled back, drop the orphaned document.
		_ = s.documents.Remove(ctx, licensePath)
		return nil, nil, err
	}

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, profile, nil
}

func (s *Service) validateRegister(req RegisterRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return apperror.NewFieldValidation("full_name", "full name is required")
	}
	if req.Email == "" {
		return apperror.NewFieldValidation("email", "email is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperror.NewFieldValidation("email", "invalid email address")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return apperror.NewFieldValidation("password",
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength))
	}
	if req.DrugLicense == nil {
		return apperror.NewFieldValidation("drug_license_file", "drug license is required")
	}
	return ValidateUpload("drug_license_file", req.DrugLicense)
}

// Login authenticates a user and returns an access token.
// Any credential failure yields the same generic message.
func (s *Service) Login(ctx context.Context, creds Credentials) (*AccessToken, *User, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(creds.Email))
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	tokenString, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token: %w", err)
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email)

	return &AccessToken{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		TokenType: "Bearer",
	}, user, nil
}

// Me retrieves the current user with profile.
func (s *Service) Me(ctx context.Context, userID id.ID) (*User, *Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, apperror.NewNotFound("user", userID.String())
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get profile: %w", err)
	}

	return user, profile, nil
}

// UpdateProfile edits contact fields and optionally replaces documents.
func (s *Service) UpdateProfile(ctx context.Context, userID id.ID, upd ProfileUpdate) (*Profile, error) {
	if strings.TrimSpace(upd.FullName) == "" {
		return nil, apperror.NewFieldValidation("full_name", "full name is required")
	}
	if upd.GovID != nil {
		if err := ValidateUpload("gov_id_file", upd.GovID); err != nil {
			return nil, err
		}
	}
	if upd.DrugLicense != nil {
		if err := ValidateUpload("drug_license_file", upd.DrugLicense); err != nil {
			return nil, err
		}
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile.FullName = strings.TrimSpace(upd.FullName)
	profile.Phone = upd.Phone
	profile.Address = upd.Address
	profile.GovIDType = upd.GovIDType

	var replaced []string
	if upd.GovID != nil {
		path, err := s.documents.Save(ctx, userID, "gov_id", upd.GovID)
		if err != nil {
			return nil, fmt.Errorf("store gov id: %w", err)
		}
		if profile.GovIDFile != "" {
			replaced = append(replaced, profile.GovIDFile)
		}
		profile.GovIDFile = path
	}
	if upd.DrugLicense != nil {
		path, err := s.documents.Save(ctx, userID, "drug_license", upd.DrugLicense)
		if err != nil {
			return nil, fmt.Errorf("store drug license: %w", err)
		}
		if profile.DrugLicenseFile != "" {
			replaced = append(replaced, profile.DrugLicenseFile)
		}
		profile.DrugLicenseFile = path
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	// Old documents are only removed after the update commits.
	for _, path := range replaced {
		_ = s.documents.Remove(ctx, path)
	}

	logger.Info(ctx, "profile updated", "user_id", userID)
	return profile, nil
}

// ChangePassword verifies the old password and sets a new one.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, req ChangePasswordRequest) error {
	if len(req.NewPassword) < s.config.PasswordMinLength {
		return apperror.NewFieldValidation("new_password",
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperror.NewNotFound("user", userID.String())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return apperror.NewFieldValidation("old_password", "current password is incorrect")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	logger.Info(ctx, "password changed", "user_id", userID)
	return nil
}
