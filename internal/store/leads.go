package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

func (s *Store) GetLeadByID(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	query := `SELECT id, name, email, phone, school_name, source, status, created_at, updated_at
              FROM leads WHERE id = $1`
	lead := &model.Lead{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.SchoolName,
		&lead.Source, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *Store) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus) error {
	query := `UPDATE leads SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
