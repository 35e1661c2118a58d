package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// CtxTraceContext is a context key for the trace context (used by mylog)
type CtxTraceContext struct{}

type ctxRequestUID struct{}

// ContextFromHTTPRequest derives the request context and attaches the cloud trace.
// Values stored on the request by middleware (tenant, request-uid) stay reachable.
func ContextFromHTTPRequest(r *http.Request) context.Context {
	var trace string

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	traceContext := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceContext, "/")

	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		trace = fmt.Sprintf("projects/%s/traces/%s", projectID, traceParts[0])
	}

	return context.WithValue(r.Context(), CtxTraceContext{}, trace)
}

func TraceFromContext(c context.Context) string {
	trace, ok := c.Value(CtxTraceContext{}).(string)
	if !ok {
		return ""
	}
	return trace
}

func WithRequestUID(c context.Context, requestUID string) context.Context {
	return context.WithValue(c, ctxRequestUID{}, requestUID)
}

func RequestUIDFromContext(c context.Context) string {
	uid, ok := c.Value(ctxRequestUID{}).(string)
	if !ok {
		return ""
	}
	return uid
}
