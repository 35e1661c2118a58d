package checkout

import (
	"context"

	"github.com/MarcGrol/agentcommerce/services/adapters"
	"github.com/MarcGrol/agentcommerce/services/catalog"
	"github.com/MarcGrol/agentcommerce/services/tenant"
)

//go:generate mockgen -source=api.go -package checkout -destination api_mock.go ProductLookup AdapterResolver
type ProductLookup interface {
	LookupActive(c context.Context, tenantID string, id string, sku string) (catalog.Product, bool, error)
}

type AdapterResolver interface {
	AdapterFor(c context.Context, t tenant.Tenant) adapters.Adapter
}

// TransitionObserver is told about every status change.
type TransitionObserver interface {
	CheckoutTransition(from string, to string, protocol string)
}
