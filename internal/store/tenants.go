package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

// ErrSlugTaken is returned when a tenant insert hits the unique constraint
// on slug.
var ErrSlugTaken = errors.New("tenant slug already in use")

// cachedTenant carries the decrypted billing credential through the cache;
// the model hides it from JSON so the bare Tenant would lose it.
type cachedTenant struct {
	model.Tenant
	BillingAPIKey string `json:"billing_api_key,omitempty"`
}

func (s *Store) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	tenant.ID = uuid.New()
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = tenant.CreatedAt

	// Encrypt billing credential if provided
	if tenant.BillingAPIKey != "" {
		encrypted, iv, err := s.cipher.Encrypt(tenant.BillingAPIKey)
		if err != nil {
			return err
		}
		tenant.EncryptedKey = encrypted
		tenant.KeyIV = iv
	}

	query := `INSERT INTO tenants (id, name, slug, domain, plan_id, owner_email, encrypted_billing_key, billing_key_iv, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := s.pool.Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.Slug, tenant.Domain, tenant.PlanID, tenant.OwnerEmail,
		tenant.EncryptedKey, tenant.KeyIV, tenant.Status, tenant.CreatedAt, tenant.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlugTaken
		}
		return err
	}

	s.redis.Del(ctx, tenantKey(tenant.ID))
	return nil
}

func (s *Store) GetTenantByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	key := tenantKey(id)
	cached := &cachedTenant{}
	if s.cacheGet(ctx, key, cached) {
		tenant := cached.Tenant
		tenant.BillingAPIKey = cached.BillingAPIKey
		return &tenant, nil
	}

	query := `SELECT id, name, slug, domain, plan_id, owner_email, encrypted_billing_key, billing_key_iv, status, created_at, updated_at, deleted_at
              FROM tenants WHERE id = $1`
	tenant := &model.Tenant{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&tenant.ID, &tenant.Name, &tenant.Slug, &tenant.Domain, &tenant.PlanID, &tenant.OwnerEmail,
		&tenant.EncryptedKey, &tenant.KeyIV, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt, &tenant.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Decrypt billing credential if present
	if len(tenant.EncryptedKey) > 0 && len(tenant.KeyIV) > 0 {
		apiKey, err := s.cipher.Decrypt(tenant.EncryptedKey, tenant.KeyIV)
		if err != nil {
			return nil, err
		}
		tenant.BillingAPIKey = apiKey
	}

	s.cacheSet(ctx, key, &cachedTenant{Tenant: *tenant, BillingAPIKey: tenant.BillingAPIKey})
	return tenant, nil
}
