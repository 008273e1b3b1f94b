package workflow

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
	"github.com/wisewolf-edu/onboarding-service/internal/monitoring"
	"github.com/wisewolf-edu/onboarding-service/internal/slug"
	"github.com/wisewolf-edu/onboarding-service/internal/store"
)

// ProvisionStore is the slice of the store the provisioning workflow needs.
type ProvisionStore interface {
	CreateTenant(ctx context.Context, tenant *model.Tenant) error
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus) error
	CreateWorkflowLog(ctx context.Context, tenantID uuid.UUID, workflow, step, status string, details interface{}) error
}

// Provisioner turns a sales lead into a tenant and an invitation link for
// its administrator.
type Provisioner struct {
	store      ProvisionStore
	baseDomain string
	appBaseURL string
}

func NewProvisioner(store ProvisionStore, baseDomain, appBaseURL string) *Provisioner {
	return &Provisioner{
		store:      store,
		baseDomain: baseDomain,
		appBaseURL: strings.TrimSuffix(appBaseURL, "/"),
	}
}

type ProvisionInput struct {
	// LeadID is optional; uuid.Nil means the originating lead is not tracked
	// and no status transition is attempted.
	LeadID    uuid.UUID
	LeadName  string
	LeadEmail string
	LeadPhone string
	// SchoolName overrides LeadName as the organization name when set.
	SchoolName string
	// SlugOverride skips slug derivation when non-empty.
	SlugOverride string
	PlanID       *uuid.UUID
}

type ProvisionResult struct {
	Tenant    *model.Tenant
	InviteURL string
	// LeadStatusErr reports a failed best-effort lead status update. The
	// tenant was still created; callers must surface both outcomes.
	LeadStatusErr error
}

// Provision creates the tenant, builds the admin invitation link and closes
// the originating lead. A failed tenant insert aborts the workflow; a failed
// lead update does not.
func (p *Provisioner) Provision(ctx context.Context, in ProvisionInput) (*ProvisionResult, error) {
	orgName := in.SchoolName
	if orgName == "" {
		orgName = in.LeadName
	}
	tenantSlug := in.SlugOverride
	if tenantSlug == "" {
		tenantSlug = slug.Make(orgName)
	}
	if tenantSlug == "" {
		return nil, E(KindValidation, "organization name yields an empty slug", nil)
	}
	if in.LeadEmail == "" {
		return nil, E(KindValidation, "owner email is required", nil)
	}

	tenant := &model.Tenant{
		Name:       orgName,
		Slug:       tenantSlug,
		Domain:     tenantSlug + "." + p.baseDomain,
		PlanID:     in.PlanID,
		OwnerEmail: in.LeadEmail,
		Status:     "active",
	}
	if err := p.store.CreateTenant(ctx, tenant); err != nil {
		monitoring.TenantsProvisioned.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("slug", tenantSlug).Msg("Failed to create tenant")
		if errors.Is(err, store.ErrSlugTaken) {
			return nil, E(KindPersistence, "tenant slug already in use", err)
		}
		return nil, E(KindPersistence, "failed to create tenant", err)
	}

	res := &ProvisionResult{
		Tenant:    tenant,
		InviteURL: p.inviteURL(tenantSlug, in.LeadEmail),
	}

	if in.LeadID != uuid.Nil {
		if err := p.store.UpdateLeadStatus(ctx, in.LeadID, model.LeadStatusClosed); err != nil {
			log.Error().Err(err).Str("lead_id", in.LeadID.String()).Msg("Failed to close lead after tenant creation")
			monitoring.Alert("lead status update failed after tenant creation", map[string]string{
				"tenant_id": tenant.ID.String(),
				"lead_id":   in.LeadID.String(),
			})
			res.LeadStatusErr = E(KindPersistence, "tenant created but lead status update failed", err)
		}
	}

	p.logStep(ctx, tenant.ID, "tenant_created", map[string]interface{}{"slug": tenantSlug})
	monitoring.TenantsProvisioned.WithLabelValues("success").Inc()
	return res, nil
}

// inviteURL embeds the tenant slug and admin email into the signup link the
// administrator must visit to complete account creation.
func (p *Provisioner) inviteURL(tenantSlug, email string) string {
	v := url.Values{}
	v.Set("tenant", tenantSlug)
	v.Set("email", email)
	v.Set("role", string(model.RoleSchoolAdmin))
	return p.appBaseURL + "/signup?" + v.Encode()
}

func (p *Provisioner) logStep(ctx context.Context, tenantID uuid.UUID, step string, details interface{}) {
	if err := p.store.CreateWorkflowLog(ctx, tenantID, "provisioning", step, "success", details); err != nil {
		log.Warn().Err(err).Str("step", step).Msg("Failed to write workflow log")
	}
}
