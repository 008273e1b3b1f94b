package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wisewolf-edu/onboarding-service/internal/billing"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
	"github.com/wisewolf-edu/onboarding-service/internal/monitoring"
)

// EnrollStore is the slice of the store the enrollment workflow needs.
type EnrollStore interface {
	GetLeadByID(ctx context.Context, id uuid.UUID) (*model.Lead, error)
	GetPlanByID(ctx context.Context, id uuid.UUID) (*model.Plan, error)
	GetTenantByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	CreateProfile(ctx context.Context, profile *model.Profile) error
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus) error
	CreateWorkflowLog(ctx context.Context, tenantID uuid.UUID, workflow, step, status string, details interface{}) error
}

// Enroller converts a lead into an enrolled student: billing subscription,
// platform profile, subscription record, lead status transition.
type Enroller struct {
	store     EnrollStore
	provider  billing.Provider
	simulated billing.Provider
}

func NewEnroller(store EnrollStore, provider billing.Provider) *Enroller {
	return &Enroller{store: store, provider: provider, simulated: billing.Simulated{}}
}

type EnrollInput struct {
	LeadID   string
	PlanID   string
	TenantID string
}

type EnrollResult struct {
	Subscription *model.Subscription
	Profile      *model.Profile
	// SubscriptionID is the billing-provider subscription identifier, or a
	// sim_sub_ placeholder in simulation mode.
	SubscriptionID string
	Simulated      bool
}

// Enroll runs the enrollment sequence. Every step either yields what the
// next step needs or aborts the remainder; completed steps are not rolled
// back.
func (e *Enroller) Enroll(ctx context.Context, in EnrollInput) (*EnrollResult, error) {
	start := time.Now()
	defer func() {
		monitoring.EnrollmentDuration.Observe(time.Since(start).Seconds())
	}()

	leadID, planID, tenantID, err := e.validate(in)
	if err != nil {
		return nil, err
	}

	lead, err := e.store.GetLeadByID(ctx, leadID)
	if err != nil {
		return nil, e.fail(E(KindPersistence, "failed to fetch lead", err))
	}
	if lead == nil {
		return nil, e.fail(E(KindNotFound, "lead not found", nil))
	}

	plan, err := e.store.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, e.fail(E(KindPersistence, "failed to fetch pricing plan", err))
	}
	if plan == nil {
		return nil, e.fail(E(KindNotFound, "pricing plan not found", nil))
	}

	tenant, err := e.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, e.fail(E(KindPersistence, "failed to fetch tenant", err))
	}
	if tenant == nil {
		return nil, e.fail(E(KindNotFound, "tenant not found", nil))
	}

	// A missing credential is not an error: it selects simulation mode.
	provider := e.provider
	simulated := tenant.BillingAPIKey == ""
	if simulated {
		provider = e.simulated
		log.Info().Str("tenant_id", tenant.ID.String()).Msg("Tenant has no billing credential, using simulated billing")
	}

	customerID, err := provider.CreateCustomer(ctx, tenant.BillingAPIKey, billing.CustomerParams{
		Email: lead.Email,
		Name:  lead.Name,
		Phone: lead.Phone,
	})
	if err != nil {
		return nil, e.fail(E(KindIntegration, "billing provider failed to create customer", err))
	}
	providerSubID, err := provider.CreateSubscription(ctx, tenant.BillingAPIKey, customerID, plan)
	if err != nil {
		return nil, e.fail(E(KindIntegration, "billing provider failed to create subscription", err))
	}

	profile, err := e.upsertProfile(ctx, lead, tenant)
	if err != nil {
		return nil, e.fail(err)
	}

	sub := &model.Subscription{
		TenantID:           tenant.ID,
		ProfileID:          profile.ID,
		PlanID:             plan.ID,
		ProviderCustomerID: customerID,
		ProviderSubID:      providerSubID,
		Status:             "active",
	}
	if err := e.store.CreateSubscription(ctx, sub); err != nil {
		return nil, e.fail(E(KindPersistence, "failed to create subscription record", err))
	}

	if err := e.store.UpdateLeadStatus(ctx, lead.ID, model.LeadStatusConverted); err != nil {
		// Profile and subscription already exist; the lead is left stale for
		// the caller to reconcile.
		return nil, e.fail(E(KindPersistence, "subscription created but lead status update failed", err))
	}

	e.logStep(ctx, tenant.ID, "enrolled", map[string]interface{}{
		"lead_id":         lead.ID.String(),
		"subscription_id": providerSubID,
		"simulated":       simulated,
	})
	monitoring.Enrollments.WithLabelValues("success").Inc()

	return &EnrollResult{
		Subscription:   sub,
		Profile:        profile,
		SubscriptionID: providerSubID,
		Simulated:      simulated,
	}, nil
}

// validate rejects missing or malformed identifiers before any store access.
func (e *Enroller) validate(in EnrollInput) (leadID, planID, tenantID uuid.UUID, err error) {
	var missing []string
	if in.LeadID == "" {
		missing = append(missing, "leadId")
	}
	if in.PlanID == "" {
		missing = append(missing, "planId")
	}
	if in.TenantID == "" {
		missing = append(missing, "tenantId")
	}
	if len(missing) > 0 {
		return uuid.Nil, uuid.Nil, uuid.Nil,
			E(KindValidation, "Missing required parameters: "+strings.Join(missing, ", "), nil)
	}
	if leadID, err = uuid.Parse(in.LeadID); err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, E(KindValidation, "leadId is not a valid identifier", err)
	}
	if planID, err = uuid.Parse(in.PlanID); err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, E(KindValidation, "planId is not a valid identifier", err)
	}
	if tenantID, err = uuid.Parse(in.TenantID); err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, E(KindValidation, "tenantId is not a valid identifier", err)
	}
	return leadID, planID, tenantID, nil
}

// upsertProfile resolves the platform profile by the lead's email, creating
// a student profile if absent or re-asserting role and status if present.
// Re-running enrollment therefore never duplicates a profile.
func (e *Enroller) upsertProfile(ctx context.Context, lead *model.Lead, tenant *model.Tenant) (*model.Profile, error) {
	profile, err := e.store.GetProfileByEmail(ctx, lead.Email)
	if err != nil {
		return nil, E(KindPersistence, "failed to look up profile", err)
	}
	if profile == nil {
		profile = &model.Profile{
			TenantID: tenant.ID,
			Email:    lead.Email,
			FullName: lead.Name,
			Phone:    lead.Phone,
			Role:     model.RoleStudent,
			Status:   "active",
		}
		if err := e.store.CreateProfile(ctx, profile); err != nil {
			return nil, E(KindPersistence, "failed to create profile", err)
		}
		return profile, nil
	}

	profile.Role = model.RoleStudent
	profile.Status = "active"
	if err := e.store.UpdateProfile(ctx, profile); err != nil {
		return nil, E(KindPersistence, "failed to update profile", err)
	}
	return profile, nil
}

func (e *Enroller) fail(err error) error {
	monitoring.Enrollments.WithLabelValues("error").Inc()
	log.Error().Err(err).Msg("Enrollment failed")
	return err
}

func (e *Enroller) logStep(ctx context.Context, tenantID uuid.UUID, step string, details interface{}) {
	if err := e.store.CreateWorkflowLog(ctx, tenantID, "enrollment", step, "success", details); err != nil {
		log.Warn().Err(err).Str("step", step).Msg("Failed to write workflow log")
	}
}
