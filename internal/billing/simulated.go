package billing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

const (
	// SimCustomerPrefix and SimSubscriptionPrefix mark identifiers produced
	// in simulation mode so they are never mistaken for provider ids.
	SimCustomerPrefix     = "sim_cus_"
	SimSubscriptionPrefix = "sim_sub_"
)

// Simulated is the provider used when a tenant has no billing credential.
// It synthesizes prefixed placeholder identifiers and never leaves the
// process.
type Simulated struct{}

func (Simulated) CreateCustomer(_ context.Context, _ string, params CustomerParams) (string, error) {
	id := SimCustomerPrefix + shortID()
	log.Info().Str("customer_id", id).Str("email", params.Email).Msg("Simulated billing: created customer")
	return id, nil
}

func (Simulated) CreateSubscription(_ context.Context, _, customerID string, plan *model.Plan) (string, error) {
	id := SimSubscriptionPrefix + shortID()
	log.Info().
		Str("subscription_id", id).
		Str("customer_id", customerID).
		Str("plan", plan.Name).
		Msg("Simulated billing: created subscription")
	return id, nil
}

// IsSimulated reports whether an identifier was synthesized locally.
func IsSimulated(id string) bool {
	return strings.HasPrefix(id, SimCustomerPrefix) || strings.HasPrefix(id, SimSubscriptionPrefix)
}

func shortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
