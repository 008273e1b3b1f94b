package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

// GetPlanByID reads a pricing plan. Plans are read-only reference data, so
// cached reads never go stale in a way that matters.
func (s *Store) GetPlanByID(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	key := planKey(id)
	cached := &model.Plan{}
	if s.cacheGet(ctx, key, cached) {
		return cached, nil
	}

	query := `SELECT id, name, price_cents, currency, billing_interval, created_at
              FROM pricing_plans WHERE id = $1`
	plan := &model.Plan{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID, &plan.Name, &plan.PriceCents, &plan.Currency, &plan.Interval, &plan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, plan)
	return plan, nil
}
