package adapters

import (
	"context"
	"fmt"
	"sync"
)

// connection keeps the connected flag and credentials every adapter shares.
// Platform specific dial and probe logic is passed in by the embedding adapter.
type connection struct {
	mutex       sync.Mutex
	connected   bool
	credentials Credentials
}

func (cn *connection) connect(c context.Context, credentials Credentials, dial func(c context.Context, credentials Credentials) (ConnectionResult, error)) (ConnectionResult, error) {
	cn.mutex.Lock()
	cn.credentials = credentials
	cn.mutex.Unlock()

	result, err := dial(c, credentials)

	cn.mutex.Lock()
	defer cn.mutex.Unlock()
	cn.connected = err == nil
	if err != nil {
		return ConnectionResult{}, err
	}
	return result, nil
}

func (cn *connection) disconnect() {
	cn.mutex.Lock()
	defer cn.mutex.Unlock()

	cn.connected = false
	cn.credentials = Credentials{}
}

func (cn *connection) testConnection(c context.Context, probe func(c context.Context) (ConnectionResult, error)) (ConnectionResult, error) {
	if !cn.IsConnected() {
		return ConnectionResult{}, fmt.Errorf("test connection: %w", ErrNotConnected)
	}
	return probe(c)
}

func (cn *connection) IsConnected() bool {
	cn.mutex.Lock()
	defer cn.mutex.Unlock()

	return cn.connected
}

func (cn *connection) currentCredentials() Credentials {
	cn.mutex.Lock()
	defer cn.mutex.Unlock()

	return cn.credentials
}

func (cn *connection) markConnected() {
	cn.mutex.Lock()
	defer cn.mutex.Unlock()

	cn.connected = true
}
