package mycache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MarcGrol/agentcommerce/lib/mytime"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

type inMemoryCache struct {
	sync.Mutex
	nower   mytime.Nower
	entries map[string]entry
}

func NewInMemoryCache(nower mytime.Nower) *inMemoryCache {
	return &inMemoryCache{
		nower:   nower,
		entries: map[string]entry{},
	}
}

func (m *inMemoryCache) Get(c context.Context, tenantID string, key string, into any) (bool, error) {
	m.Lock()
	e, found := m.entries[Key(tenantID, key)]
	m.Unlock()

	if !found || mytime.IsExpired(m.nower.Now(), e.expiresAt) {
		return false, nil
	}

	err := json.Unmarshal(e.data, into)
	if err != nil {
		return false, fmt.Errorf("error decoding cached value %s: %s", key, err)
	}
	return true, nil
}

func (m *inMemoryCache) Set(c context.Context, tenantID string, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding value %s: %s", key, err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	m.Lock()
	defer m.Unlock()

	m.entries[Key(tenantID, key)] = entry{
		data:      data,
		expiresAt: m.nower.Now().Add(ttl),
	}
	return nil
}

func (m *inMemoryCache) Delete(c context.Context, tenantID string, key string) error {
	m.Lock()
	defer m.Unlock()

	delete(m.entries, Key(tenantID, key))
	return nil
}

func (m *inMemoryCache) InvalidatePrefix(c context.Context, tenantID string, prefix string) error {
	m.Lock()
	defer m.Unlock()

	full := Key(tenantID, prefix)
	for k := range m.entries {
		if strings.HasPrefix(k, full) {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *inMemoryCache) Ping(c context.Context) error {
	return nil
}
