package myhttp

import (
	"net/http"

	"github.com/MarcGrol/agentcommerce/lib/mycontext"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
)

const RequestUIDHeader = "X-Request-ID"

// RequestUIDMiddleware propagates or assigns a request id, echoed on the response.
func RequestUIDMiddleware(uuider myuuid.UUIDer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestUID := r.Header.Get(RequestUIDHeader)
			if requestUID == "" {
				requestUID = uuider.Create()
			}
			w.Header().Set(RequestUIDHeader, requestUID)

			next.ServeHTTP(w, r.WithContext(mycontext.WithRequestUID(r.Context(), requestUID)))
		})
	}
}
