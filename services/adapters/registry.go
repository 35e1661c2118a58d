package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
)

// Registry creates platform adapters and keeps one connected adapter per tenant.
type Registry struct {
	mutex    sync.Mutex
	adapters map[string]Adapter
	sender   myhttpclient.HTTPSender
	nower    mytime.Nower
	uuider   myuuid.UUIDer
	logger   mylog.Logger
}

func NewRegistry(sender myhttpclient.HTTPSender, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *Registry {
	return &Registry{
		adapters: map[string]Adapter{},
		sender:   sender,
		nower:    nower,
		uuider:   uuider,
		logger:   logger,
	}
}

// Create returns a fresh, unconnected adapter. Unknown platforms get the in-memory mock.
func (r *Registry) Create(platform Platform) Adapter {
	switch platform {
	case PlatformShopify:
		return NewShopify(r.sender)
	case PlatformWooCommerce:
		return NewWooCommerce(r.sender)
	case PlatformVendure:
		return NewVendure(r.sender, r.nower, r.uuider, r.logger)
	default:
		return NewMock(r.nower, r.uuider)
	}
}

// Get creates an adapter and connects it when credentials are given.
func (r *Registry) Get(c context.Context, platform Platform, credentials Credentials) (Adapter, error) {
	adapter := r.Create(platform)
	if credentials.IsEmpty() {
		return adapter, nil
	}
	_, err := adapter.Connect(c, credentials)
	if err != nil {
		return adapter, err
	}
	return adapter, nil
}

// ForTenant returns the cached adapter of a tenant.
// A change of credentials results in a new adapter. An adapter that failed to connect is returned but not cached.
func (r *Registry) ForTenant(c context.Context, tenantID string, platform Platform, credentials Credentials) Adapter {
	key := tenantID + ":" + string(platform) + ":" + fingerprint(credentials)

	r.mutex.Lock()
	adapter, found := r.adapters[key]
	r.mutex.Unlock()
	if found {
		return adapter
	}

	adapter, err := r.Get(c, platform, credentials)
	if err != nil {
		r.logger.Log(c, tenantID, mylog.SeverityWarn, "Error connecting %s adapter: %s", platform, err)
		return adapter
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if existing, found := r.adapters[key]; found {
		return existing
	}
	r.adapters[key] = adapter

	return adapter
}

// Evict drops all cached adapters of a tenant.
func (r *Registry) Evict(tenantID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for key := range r.adapters {
		if strings.HasPrefix(key, tenantID+":") {
			delete(r.adapters, key)
		}
	}
}

func fingerprint(credentials Credentials) string {
	if credentials.IsEmpty() {
		return "none"
	}
	raw, _ := json.Marshal(credentials)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
