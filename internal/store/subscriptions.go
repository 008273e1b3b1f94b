package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

func (s *Store) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now()

	query := `INSERT INTO subscriptions (id, tenant_id, profile_id, plan_id, provider_customer_id, provider_subscription_id, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.pool.Exec(ctx, query,
		sub.ID, sub.TenantID, sub.ProfileID, sub.PlanID,
		sub.ProviderCustomerID, sub.ProviderSubID, sub.Status, sub.CreatedAt)
	return err
}
