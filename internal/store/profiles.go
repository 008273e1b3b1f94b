package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT id, tenant_id, email, full_name, phone, role, status, created_at, updated_at
              FROM profiles WHERE email = $1`
	profile := &model.Profile{}
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&profile.ID, &profile.TenantID, &profile.Email, &profile.FullName, &profile.Phone,
		&profile.Role, &profile.Status, &profile.CreatedAt, &profile.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Store) CreateProfile(ctx context.Context, profile *model.Profile) error {
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	query := `INSERT INTO profiles (id, tenant_id, email, full_name, phone, role, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.pool.Exec(ctx, query,
		profile.ID, profile.TenantID, profile.Email, profile.FullName, profile.Phone,
		profile.Role, profile.Status, profile.CreatedAt, profile.UpdatedAt)
	return err
}

func (s *Store) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	profile.UpdatedAt = time.Now()
	query := `UPDATE profiles SET full_name = $2, phone = $3, role = $4, status = $5, updated_at = $6
              WHERE id = $1`
	_, err := s.pool.Exec(ctx, query,
		profile.ID, profile.FullName, profile.Phone, profile.Role, profile.Status, profile.UpdatedAt)
	return err
}
