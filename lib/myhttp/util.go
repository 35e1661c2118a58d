package myhttp

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// HostnameWithScheme returns the externally visible base url of this service.
func HostnameWithScheme(r *http.Request) string {
	publicBaseURL := os.Getenv("PUBLIC_BASE_URL")
	if publicBaseURL != "" {
		return strings.TrimSuffix(publicBaseURL, "/")
	}

	scheme := "https"
	if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") != "https" {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
