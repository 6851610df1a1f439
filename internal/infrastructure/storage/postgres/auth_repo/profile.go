package auth_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/domain/auth"
	"medstock/internal/infrastructure/storage/postgres"
)

// ProfileRepo implements auth.ProfileRepository.
type ProfileRepo struct {
	txManager *postgres.TxManager
}

// NewProfileRepo creates a new profile repository.
func NewProfileRepo(txManager *postgres.TxManager) *ProfileRepo {
	return &ProfileRepo{txManager: txManager}
}

// Create creates a profile.
func (r *ProfileRepo) Create(ctx context.Context, profile *auth.Profile) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		INSERT INTO auth_profiles (
			id, user_id, full_name, phone, address,
			gov_id_type, gov_id_file, drug_license_file,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		profile.ID, profile.UserID, profile.FullName, profile.Phone, profile.Address,
		profile.GovIDType, profile.GovIDFile, profile.DrugLicenseFile,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the profile of a user.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID id.ID) (*auth.Profile, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `
		SELECT id, user_id, full_name, phone, address,
			   gov_id_type, gov_id_file, drug_license_file,
			   created_at, updated_at
		FROM auth_profiles
		WHERE user_id = $1
	`

	var profile auth.Profile
	err := q.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FullName, &profile.Phone, &profile.Address,
		&profile.GovIDType, &profile.GovIDFile, &profile.DrugLicenseFile,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("profile", userID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	return &profile, nil
}

// Update updates profile data.
func (r *ProfileRepo) Update(ctx context.Context, profile *auth.Profile) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		UPDATE auth_profiles SET
			full_name = $2,
			phone = $3,
			address = $4,
			gov_id_type = $5,
			gov_id_file = $6,
			drug_license_file = $7,
			updated_at = $8
		WHERE user_id = $1
	`

	result, err := q.Exec(ctx, query,
		profile.UserID, profile.FullName, profile.Phone, profile.Address,
		profile.GovIDType, profile.GovIDFile, profile.DrugLicenseFile,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", profile.UserID.String())
	}

	return nil
}

// Ensure interface compliance
var _ auth.ProfileRepository = (*ProfileRepo)(nil)
