package mystore

import (
	"context"
	"os"
)

type ctxTransactionKey struct{}

// Filter compares a top-level exported field of the stored entity with a value.
// Supported comparators: "=", "<", "<=", ">", ">=".
type Filter struct {
	Field   string
	Compare string
	Value   any
}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store Pinger
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	List(c context.Context) ([]T, error)
	// Query returns entities matching all filters; prefix orderByField with "-" for descending order.
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(c context.Context) error
}

func New[T any](c context.Context) (Store[T], func(), error) {
	if os.Getenv("DATABASE_URL") != "" {
		return newPostgresStore[T](c, os.Getenv("DATABASE_URL"))
	}

	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}

	return NewInMemoryStore[T](c)
}
