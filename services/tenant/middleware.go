package tenant

import (
	"net/http"

	"github.com/MarcGrol/agentcommerce/lib/mycontext"
	"github.com/MarcGrol/agentcommerce/lib/myhttp"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

const APIKeyHeader = "X-API-Key"

// Middleware rejects requests without a valid api key and puts the tenant on the request context.
func Middleware(authenticator Authenticator) func(http.Handler) http.Handler {
	logger := mylog.New("auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := mycontext.ContextFromHTTPRequest(r)

			tenant, err := authenticator.Authenticate(c, r.Header.Get(APIKeyHeader))
			if err != nil {
				myhttp.NewWriter(logger).WriteError(c, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenant)))
		})
	}
}
