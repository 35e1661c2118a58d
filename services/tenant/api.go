package tenant

import (
	"context"
)

//go:generate mockgen -source=api.go -package tenant -destination api_mock.go SyncScheduler Authenticator
type SyncScheduler interface {
	ScheduleSync(c context.Context, tenantID string) error
}

// Authenticator resolves the tenant behind an api key.
type Authenticator interface {
	Authenticate(c context.Context, apiKey string) (Tenant, error)
}
