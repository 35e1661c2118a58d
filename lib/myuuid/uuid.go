package myuuid

import (
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uuid.go -package myuuid -destination uuider_mock.go UUIDer
type UUIDer interface {
	Create() string
}

type RealUUIDer struct{}

func (u RealUUIDer) Create() string {
	return uuid.New().String()
}

// Prefixed derives a compact, typed identifier like "ord_3f2a..." from a uuid.
func Prefixed(prefix string, uid string) string {
	compact := strings.ReplaceAll(uid, "-", "")
	if len(compact) > 24 {
		compact = compact[:24]
	}
	if prefix == "" {
		return compact
	}
	return prefix + "_" + compact
}
