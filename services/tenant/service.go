package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MarcGrol/agentcommerce/lib/myapikey"
	"github.com/MarcGrol/agentcommerce/lib/mycache"
	"github.com/MarcGrol/agentcommerce/lib/myconfig"
	"github.com/MarcGrol/agentcommerce/lib/myerrors"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mystore"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
	"github.com/MarcGrol/agentcommerce/lib/myvault"
	"github.com/MarcGrol/agentcommerce/services/adapters"
)

const (
	authCacheNamespace = "auth"
	demoTenantEmail    = "demo@agentix.com"
)

var errUnknownAPIKey = errors.New("unknown api key")

type Service struct {
	store     mystore.Store[Tenant]
	cache     mycache.Cache
	vault     myvault.Vault
	registry  *adapters.Registry
	scheduler SyncScheduler
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Tenant], cache mycache.Cache, vault myvault.Vault, registry *adapters.Registry, nower mytime.Nower, uuider myuuid.UUIDer) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		vault:    vault,
		registry: registry,
		nower:    nower,
		uuider:   uuider,
		logger:   mylog.New("tenant"),
	}
}

// SetSyncScheduler is called during wiring because the catalog depends on this service.
func (s *Service) SetSyncScheduler(scheduler SyncScheduler) {
	s.scheduler = scheduler
}

// Authenticate resolves the tenant that owns apiKey and checks that it may use the api.
func (s *Service) Authenticate(c context.Context, apiKey string) (Tenant, error) {
	if apiKey == "" {
		return Tenant{}, myerrors.NewAuthenticationError(fmt.Errorf("Missing X-API-Key header"))
	}

	tenant, err := mycache.GetOrLoad(c, s.cache, authCacheNamespace, apiKey, mycache.DefaultTTL, func() (Tenant, error) {
		t, found, err := s.getByAPIKey(c, apiKey)
		if err != nil {
			return Tenant{}, err
		}
		if !found {
			// unknown keys are not cached
			return Tenant{}, errUnknownAPIKey
		}
		return t, nil
	})
	if err != nil {
		if errors.Is(err, errUnknownAPIKey) {
			return Tenant{}, myerrors.NewAuthenticationError(fmt.Errorf("Invalid API key"))
		}
		return Tenant{}, myerrors.NewInternalError(err)
	}

	switch tenant.Status {
	case StatusSuspended:
		return Tenant{}, myerrors.NewAuthenticationError(fmt.Errorf("Account is suspended"))
	case StatusDisconnected:
		return Tenant{}, myerrors.NewAuthenticationError(fmt.Errorf("Account is disconnected"))
	}

	return tenant, nil
}

func (s *Service) getByAPIKey(c context.Context, apiKey string) (Tenant, bool, error) {
	tenants, err := s.store.Query(c, []mystore.Filter{{Field: "APIKey", Compare: "=", Value: apiKey}}, "")
	if err != nil {
		return Tenant{}, false, fmt.Errorf("error looking up tenant by api key: %s", err)
	}
	if len(tenants) == 0 {
		return Tenant{}, false, nil
	}
	return tenants[0], true, nil
}

func (s *Service) Get(c context.Context, tenantID string) (Tenant, error) {
	tenant, found, err := s.store.Get(c, tenantID)
	if err != nil {
		return Tenant{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Tenant{}, myerrors.NewNotFoundError(fmt.Errorf("Tenant '%s' not found", tenantID))
	}
	return tenant, nil
}

// AdapterFor returns the connected adapter of the tenant.
// Credentials that cannot be opened result in the mock adapter so the tenant keeps working in demo mode.
func (s *Service) AdapterFor(c context.Context, tenant Tenant) adapters.Adapter {
	credentials := adapters.Credentials{}
	if tenant.PlatformConfig != "" {
		err := s.vault.Open(tenant.PlatformConfig, &credentials)
		if err != nil {
			s.logger.Log(c, tenant.ID, mylog.SeverityWarn, "Error opening platform credentials of tenant %s, using demo mode: %s", tenant.ID, err)
			return s.registry.ForTenant(c, tenant.ID, adapters.PlatformMock, adapters.Credentials{})
		}
	}
	return s.registry.ForTenant(c, tenant.ID, tenant.Platform, credentials)
}

type CreateRequest struct {
	Name        string
	Email       string
	CompanyName string
	Platform    adapters.Platform
	APIKey      string
}

type CreateResult struct {
	Tenant    Tenant
	APIKey    string
	APISecret string
}

// Create provisions a tenant with fresh api credentials; only the hash of the secret is stored.
func (s *Service) Create(c context.Context, req CreateRequest) (CreateResult, error) {
	apiKey := req.APIKey
	if apiKey == "" {
		key, err := myapikey.NewAPIKey()
		if err != nil {
			return CreateResult{}, myerrors.NewInternalError(err)
		}
		apiKey = key
	}
	secret, err := myapikey.NewSecret()
	if err != nil {
		return CreateResult{}, myerrors.NewInternalError(err)
	}

	now := s.nower.Now()
	tenant := Tenant{
		ID:            myuuid.Prefixed("tnt", s.uuider.Create()),
		Name:          req.Name,
		Email:         req.Email,
		CompanyName:   req.CompanyName,
		Platform:      req.Platform,
		APIKey:        apiKey,
		APISecretHash: myapikey.HashSecret(secret),
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.store.Put(c, tenant.ID, tenant)
	if err != nil {
		return CreateResult{}, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, tenant.ID, mylog.SeverityInfo, "Created tenant %s on platform %s", tenant.Name, tenant.Platform)

	return CreateResult{Tenant: tenant, APIKey: apiKey, APISecret: secret}, nil
}

// ConnectPlatform seals the credentials on the tenant after a successful connection test.
func (s *Service) ConnectPlatform(c context.Context, tenantID string, platform adapters.Platform, credentials adapters.Credentials) (Tenant, error) {
	adapter, err := s.registry.Get(c, platform, credentials)
	if err != nil {
		return Tenant{}, myerrors.NewInvalidInputError(fmt.Errorf("Failed to connect to %s: %s", platform, err))
	}
	_ = adapter.Disconnect(c)

	sealed, err := s.vault.Seal(credentials)
	if err != nil {
		return Tenant{}, myerrors.NewInternalError(err)
	}

	var tenant Tenant
	err = s.store.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		t, found, err := s.store.Get(c, tenantID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("Tenant '%s' not found", tenantID))
		}

		now := s.nower.Now()
		t.Platform = platform
		t.PlatformConfig = sealed
		t.PlatformConnectedAt = now
		t.Status = StatusActive
		t.UpdatedAt = now

		err = s.store.Put(c, t.ID, t)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		tenant = t
		return nil
	})
	if err != nil {
		return Tenant{}, err
	}

	s.registry.Evict(tenant.ID)
	_ = s.cache.Delete(c, authCacheNamespace, tenant.APIKey)

	return tenant, nil
}

// EnsureDemoTenant makes sure the configured demo tenant exists, creating it on first start.
func (s *Service) EnsureDemoTenant(c context.Context, demo myconfig.DemoTenant) (Tenant, error) {
	if demo.APIKey == "" {
		return Tenant{}, fmt.Errorf("no demo api key configured")
	}

	existing, found, err := s.getByAPIKey(c, demo.APIKey)
	if err != nil {
		return Tenant{}, err
	}
	if found {
		return existing, nil
	}

	result, err := s.Create(c, CreateRequest{
		Name:     demo.Name,
		Email:    demoTenantEmail,
		Platform: adapters.Platform(strings.ToUpper(demo.Platform)),
		APIKey:   demo.APIKey,
	})
	if err != nil {
		return Tenant{}, err
	}
	return result.Tenant, nil
}

// HandleWebhook forwards a platform notification to the adapter of the tenant.
// Processed notifications result in a catalog refresh.
func (s *Service) HandleWebhook(c context.Context, tenant Tenant, platform adapters.Platform, payload []byte, signature string) (adapters.WebhookResult, error) {
	if platform != tenant.Platform {
		return adapters.WebhookResult{}, myerrors.NewInvalidInputError(fmt.Errorf("Tenant is connected to %s, not %s", tenant.Platform, platform))
	}

	adapter := s.AdapterFor(c, tenant)
	result, err := adapter.HandleWebhook(c, payload, signature)
	if err != nil {
		return adapters.WebhookResult{}, myerrors.NewInvalidInputError(fmt.Errorf("Error handling %s webhook: %s", platform, err))
	}

	s.logger.Log(c, tenant.ID, mylog.SeverityInfo, "Webhook %s from %s processed:%v", result.Event, platform, result.Processed)

	if result.Processed && s.scheduler != nil {
		err = s.scheduler.ScheduleSync(c, tenant.ID)
		if err != nil {
			s.logger.Log(c, tenant.ID, mylog.SeverityError, "Error scheduling catalog sync: %s", err)
		}
	}

	return result, nil
}
