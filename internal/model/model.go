package model

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus enumerates the lead pipeline states touched by the workflows.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusConverted LeadStatus = "converted"
)

// Role enumerates platform user roles.
type Role string

const (
	RoleSchoolAdmin Role = "SCHOOL_ADMIN"
	RoleStudent     Role = "student"
)

// Tenant represents the tenants table
type Tenant struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Domain        string     `json:"domain"`
	PlanID        *uuid.UUID `json:"plan_id,omitempty"`
	OwnerEmail    string     `json:"owner_email"`
	BillingAPIKey string     `json:"-"` // Plaintext (transient, not stored in DB)
	EncryptedKey  []byte     `json:"-"` // Stored in DB
	KeyIV         []byte     `json:"-"` // Stored in DB
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// Lead represents the leads table. Sales and CRM leads share one table,
// distinguished by Source.
type Lead struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	SchoolName string     `json:"school_name,omitempty"`
	Source     string     `json:"source"`
	Status     LeadStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Profile represents the profiles table
type Profile struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Plan represents the pricing_plans table. Read-only reference data.
type Plan struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
	Interval   string    `json:"interval"`
	CreatedAt  time.Time `json:"created_at"`
}

// Subscription represents the subscriptions table
type Subscription struct {
	ID                 uuid.UUID `json:"id"`
	TenantID           uuid.UUID `json:"tenant_id"`
	ProfileID          uuid.UUID `json:"profile_id"`
	PlanID             uuid.UUID `json:"plan_id"`
	ProviderCustomerID string    `json:"provider_customer_id"`
	ProviderSubID      string    `json:"provider_subscription_id"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}
