// Package billing integrates with the external payment provider. The
// provider is consumed through the Provider interface so the workflow layer
// can fall back to simulation mode when a tenant carries no credential.
package billing

import (
	"context"

	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

// CustomerParams carries the lead contact details sent to the provider.
type CustomerParams struct {
	Email string
	Name  string
	Phone string
}

// Provider creates customer and subscription records with the payment
// provider. The apiKey is the per-tenant credential.
type Provider interface {
	CreateCustomer(ctx context.Context, apiKey string, params CustomerParams) (customerID string, err error)
	CreateSubscription(ctx context.Context, apiKey, customerID string, plan *model.Plan) (subscriptionID string, err error)
}
