package catalog

import (
	"context"

	"github.com/MarcGrol/agentcommerce/services/adapters"
	"github.com/MarcGrol/agentcommerce/services/tenant"
)

// TenantResolver gives the catalog access to the tenant and its connected platform.
//
//go:generate mockgen -source=api.go -package catalog -destination api_mock.go TenantResolver
type TenantResolver interface {
	Get(c context.Context, tenantID string) (tenant.Tenant, error)
	AdapterFor(c context.Context, t tenant.Tenant) adapters.Adapter
}
