package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisewolf-edu/onboarding-service/internal/billing"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

type enrollFixture struct {
	store    *fakeStore
	provider *fakeProvider
	enroller *Enroller
	lead     *model.Lead
	plan     *model.Plan
	tenant   *model.Tenant
}

func newEnrollFixture(billingKey string) *enrollFixture {
	fs := newFakeStore()
	fp := &fakeProvider{customerID: "cus_123", subID: "sub_456"}

	lead := &model.Lead{
		ID:     uuid.New(),
		Name:   "Maria Souza",
		Email:  "maria@example.com",
		Phone:  "+5511999990000",
		Status: model.LeadStatusNew,
	}
	plan := &model.Plan{ID: uuid.New(), Name: "Mensal", PriceCents: 19900, Currency: "BRL", Interval: "month"}
	tenant := &model.Tenant{ID: uuid.New(), Name: "Escola Azul", Slug: "escola-azul", BillingAPIKey: billingKey, Status: "active"}

	fs.leads[lead.ID] = lead
	fs.plans[plan.ID] = plan
	fs.tenants[tenant.ID] = tenant

	return &enrollFixture{
		store:    fs,
		provider: fp,
		enroller: NewEnroller(fs, fp),
		lead:     lead,
		plan:     plan,
		tenant:   tenant,
	}
}

func (f *enrollFixture) input() EnrollInput {
	return EnrollInput{
		LeadID:   f.lead.ID.String(),
		PlanID:   f.plan.ID.String(),
		TenantID: f.tenant.ID.String(),
	}
}

func TestEnroll_MissingParamsFailBeforeStoreAccess(t *testing.T) {
	f := newEnrollFixture("")
	in := f.input()
	in.PlanID = ""

	res, err := f.enroller.Enroll(context.Background(), in)
	assert.Nil(t, res)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, MessageOf(err), "planId")
	assert.Zero(t, f.store.calls)
	assert.Zero(t, f.provider.customerCalls)
}

func TestEnroll_MalformedIDFailsBeforeStoreAccess(t *testing.T) {
	f := newEnrollFixture("")
	in := f.input()
	in.LeadID = "not-a-uuid"

	_, err := f.enroller.Enroll(context.Background(), in)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Zero(t, f.store.calls)
}

func TestEnroll_UnknownLead(t *testing.T) {
	f := newEnrollFixture("")
	in := f.input()
	in.LeadID = uuid.New().String()

	_, err := f.enroller.Enroll(context.Background(), in)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "lead not found", MessageOf(err))
}

func TestEnroll_UnknownPlanAndTenant(t *testing.T) {
	f := newEnrollFixture("")
	in := f.input()
	in.PlanID = uuid.New().String()
	_, err := f.enroller.Enroll(context.Background(), in)
	assert.Equal(t, KindNotFound, KindOf(err))

	in = f.input()
	in.TenantID = uuid.New().String()
	_, err = f.enroller.Enroll(context.Background(), in)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestEnroll_SimulationModeWithoutCredential(t *testing.T) {
	f := newEnrollFixture("")

	res, err := f.enroller.Enroll(context.Background(), f.input())
	require.NoError(t, err)
	assert.True(t, res.Simulated)
	assert.True(t, strings.HasPrefix(res.SubscriptionID, billing.SimSubscriptionPrefix))
	assert.True(t, strings.HasPrefix(res.Subscription.ProviderCustomerID, billing.SimCustomerPrefix))
	// The real provider must never be called without a credential.
	assert.Zero(t, f.provider.customerCalls)
	assert.Zero(t, f.provider.subCalls)

	assert.Equal(t, model.LeadStatusConverted, f.store.leadStatuses[f.lead.ID])
	require.Len(t, f.store.createdProfiles, 1)
	assert.Equal(t, model.RoleStudent, f.store.createdProfiles[0].Role)
	assert.Equal(t, "active", f.store.createdProfiles[0].Status)
	assert.Equal(t, f.tenant.ID, f.store.createdProfiles[0].TenantID)
	require.Len(t, f.store.createdSubs, 1)
	assert.Equal(t, "active", f.store.createdSubs[0].Status)
}

func TestEnroll_ProviderCalledWithCredential(t *testing.T) {
	f := newEnrollFixture("sk_live_abc")

	res, err := f.enroller.Enroll(context.Background(), f.input())
	require.NoError(t, err)
	assert.False(t, res.Simulated)
	assert.Equal(t, "sub_456", res.SubscriptionID)
	assert.Equal(t, 1, f.provider.customerCalls)
	assert.Equal(t, 1, f.provider.subCalls)
	assert.Equal(t, "sk_live_abc", f.provider.lastAPIKey)
	require.Len(t, f.store.createdSubs, 1)
	assert.Equal(t, "cus_123", f.store.createdSubs[0].ProviderCustomerID)
	assert.Equal(t, "sub_456", f.store.createdSubs[0].ProviderSubID)
}

func TestEnroll_BillingFailureHaltsBeforeAnyMutation(t *testing.T) {
	f := newEnrollFixture("sk_live_abc")
	f.provider.customerErr = errors.New("card declined")
	callsBefore := f.store.calls

	_, err := f.enroller.Enroll(context.Background(), f.input())
	assert.Equal(t, KindIntegration, KindOf(err))
	// Only the three lookups ran; no profile, subscription or lead write.
	assert.Equal(t, callsBefore+3, f.store.calls)
	assert.Empty(t, f.store.createdProfiles)
	assert.Empty(t, f.store.createdSubs)
	assert.Empty(t, f.store.leadStatuses)
}

func TestEnroll_RerunReassertsProfileWithoutDuplicating(t *testing.T) {
	f := newEnrollFixture("")

	_, err := f.enroller.Enroll(context.Background(), f.input())
	require.NoError(t, err)
	require.Len(t, f.store.createdProfiles, 1)

	_, err = f.enroller.Enroll(context.Background(), f.input())
	require.NoError(t, err)

	// Idempotent on profile, non-idempotent on subscription count.
	assert.Len(t, f.store.createdProfiles, 1)
	assert.Len(t, f.store.updatedProfiles, 1)
	assert.Equal(t, model.RoleStudent, f.store.updatedProfiles[0].Role)
	assert.Equal(t, "active", f.store.updatedProfiles[0].Status)
	assert.Len(t, f.store.createdSubs, 2)
	assert.Equal(t, model.LeadStatusConverted, f.store.leadStatuses[f.lead.ID])
}

func TestEnroll_SubscriptionInsertFailureSkipsLeadUpdate(t *testing.T) {
	f := newEnrollFixture("")
	f.store.createSubErr = errors.New("disk full")

	_, err := f.enroller.Enroll(context.Background(), f.input())
	assert.Equal(t, KindPersistence, KindOf(err))
	assert.Empty(t, f.store.leadStatuses)
	// The profile upsert had already happened and is not rolled back.
	assert.Len(t, f.store.createdProfiles, 1)
}

func TestEnroll_LeadUpdateFailureSurfacesAfterWrites(t *testing.T) {
	f := newEnrollFixture("")
	f.store.updateLeadErr = errors.New("lead table unavailable")

	_, err := f.enroller.Enroll(context.Background(), f.input())
	assert.Equal(t, KindPersistence, KindOf(err))
	// Profile and subscription stand; the lead is left stale.
	assert.Len(t, f.store.createdProfiles, 1)
	assert.Len(t, f.store.createdSubs, 1)
}
