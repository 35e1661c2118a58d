package tenant

import (
	"context"
	"time"

	"github.com/MarcGrol/agentcommerce/services/adapters"
)

type Status string

const (
	StatusPending      Status = "PENDING"
	StatusActive       Status = "ACTIVE"
	StatusSuspended    Status = "SUSPENDED"
	StatusDisconnected Status = "DISCONNECTED"
)

// Tenant is a merchant connected to one commerce platform.
// PlatformConfig holds the platform credentials sealed by the vault.
type Tenant struct {
	ID                  string
	Name                string
	Email               string
	CompanyName         string
	Platform            adapters.Platform
	PlatformConfig      string `datastore:",noindex"`
	PlatformConnectedAt time.Time
	APIKey              string
	APISecretHash       string `datastore:",noindex"`
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type ctxTenantKey struct{}

func WithTenant(c context.Context, t Tenant) context.Context {
	return context.WithValue(c, ctxTenantKey{}, t)
}

// FromContext returns the tenant the authentication middleware attached to the request.
func FromContext(c context.Context) (Tenant, bool) {
	t, ok := c.Value(ctxTenantKey{}).(Tenant)
	return t, ok
}
