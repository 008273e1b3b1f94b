package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/wisewolf-edu/onboarding-service/internal/billing"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

// fakeStore is an in-memory stand-in for the persistence collaborator. It
// counts every call so tests can assert the no-store-access guarantees.
type fakeStore struct {
	leads    map[uuid.UUID]*model.Lead
	plans    map[uuid.UUID]*model.Plan
	tenants  map[uuid.UUID]*model.Tenant
	profiles map[string]*model.Profile

	createdTenants  []*model.Tenant
	createdProfiles []*model.Profile
	updatedProfiles []*model.Profile
	createdSubs     []*model.Subscription
	leadStatuses    map[uuid.UUID]model.LeadStatus

	createTenantErr error
	updateLeadErr   error
	createSubErr    error

	calls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		leads:        make(map[uuid.UUID]*model.Lead),
		plans:        make(map[uuid.UUID]*model.Plan),
		tenants:      make(map[uuid.UUID]*model.Tenant),
		profiles:     make(map[string]*model.Profile),
		leadStatuses: make(map[uuid.UUID]model.LeadStatus),
	}
}

func (f *fakeStore) CreateTenant(_ context.Context, tenant *model.Tenant) error {
	f.calls++
	if f.createTenantErr != nil {
		return f.createTenantErr
	}
	tenant.ID = uuid.New()
	f.tenants[tenant.ID] = tenant
	f.createdTenants = append(f.createdTenants, tenant)
	return nil
}

func (f *fakeStore) GetTenantByID(_ context.Context, id uuid.UUID) (*model.Tenant, error) {
	f.calls++
	return f.tenants[id], nil
}

func (f *fakeStore) GetLeadByID(_ context.Context, id uuid.UUID) (*model.Lead, error) {
	f.calls++
	return f.leads[id], nil
}

func (f *fakeStore) UpdateLeadStatus(_ context.Context, id uuid.UUID, status model.LeadStatus) error {
	f.calls++
	if f.updateLeadErr != nil {
		return f.updateLeadErr
	}
	f.leadStatuses[id] = status
	return nil
}

func (f *fakeStore) GetPlanByID(_ context.Context, id uuid.UUID) (*model.Plan, error) {
	f.calls++
	return f.plans[id], nil
}

func (f *fakeStore) GetProfileByEmail(_ context.Context, email string) (*model.Profile, error) {
	f.calls++
	return f.profiles[email], nil
}

func (f *fakeStore) CreateProfile(_ context.Context, profile *model.Profile) error {
	f.calls++
	profile.ID = uuid.New()
	f.profiles[profile.Email] = profile
	f.createdProfiles = append(f.createdProfiles, profile)
	return nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, profile *model.Profile) error {
	f.calls++
	f.profiles[profile.Email] = profile
	f.updatedProfiles = append(f.updatedProfiles, profile)
	return nil
}

func (f *fakeStore) CreateSubscription(_ context.Context, sub *model.Subscription) error {
	f.calls++
	if f.createSubErr != nil {
		return f.createSubErr
	}
	sub.ID = uuid.New()
	f.createdSubs = append(f.createdSubs, sub)
	return nil
}

func (f *fakeStore) CreateWorkflowLog(_ context.Context, _ uuid.UUID, _, _, _ string, _ interface{}) error {
	return nil
}

// fakeProvider stands in for the billing provider.
type fakeProvider struct {
	customerID  string
	subID       string
	customerErr error
	subErr      error

	customerCalls int
	subCalls      int
	lastAPIKey    string
}

func (f *fakeProvider) CreateCustomer(_ context.Context, apiKey string, _ billing.CustomerParams) (string, error) {
	f.customerCalls++
	f.lastAPIKey = apiKey
	if f.customerErr != nil {
		return "", f.customerErr
	}
	return f.customerID, nil
}

func (f *fakeProvider) CreateSubscription(_ context.Context, apiKey, _ string, _ *model.Plan) (string, error) {
	f.subCalls++
	f.lastAPIKey = apiKey
	if f.subErr != nil {
		return "", f.subErr
	}
	return f.subID, nil
}
