package mystore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

// The transaction marker is scoped to this store so writes to other stores inside a transaction still lock.
type inMemoryTransaction struct {
	store any
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if s.inTransaction(c) {
		// nested: already holding the lock
		return f(c)
	}

	// Start transaction
	s.Lock()
	defer s.Unlock()

	snapshot := make(map[string]T, len(s.Items))
	for k, v := range s.Items {
		snapshot[k] = v
	}

	ctx := context.WithValue(c, inMemoryTransaction{store: s}, true)

	// Within this block everything is transactional
	err := f(ctx)
	if err != nil {
		// Rollback
		s.Items = snapshot
		return err
	}

	// Commit
	return nil
}

func (s *InMemoryStore[T]) inTransaction(c context.Context) bool {
	return c.Value(inMemoryTransaction{store: s}) != nil
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	keys := make([]string, 0, len(s.Items))
	for k := range s.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]T, 0, len(s.Items))
	for _, k := range keys {
		result = append(result, s.Items[k])
	}

	return result, nil
}

func (s *InMemoryStore[T]) Ping(c context.Context) error {
	return nil
}

func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(all))
	for _, item := range all {
		matches, err := matchesAll(item, filters)
		if err != nil {
			return nil, err
		}
		if matches {
			result = append(result, item)
		}
	}

	if orderByField != "" {
		descending := strings.HasPrefix(orderByField, "-")
		field := strings.TrimPrefix(orderByField, "-")
		var sortErr error
		sort.SliceStable(result, func(i, j int) bool {
			a, errA := fieldValue(result[i], field)
			b, errB := fieldValue(result[j], field)
			if errA != nil || errB != nil {
				sortErr = fmt.Errorf("cannot order by %s", field)
				return false
			}
			cmp, err := compareValues(a, b.Interface())
			if err != nil {
				sortErr = err
				return false
			}
			if descending {
				return cmp > 0
			}
			return cmp < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
	}

	return result, nil
}

func matchesAll[T any](item T, filters []Filter) (bool, error) {
	for _, f := range filters {
		v, err := fieldValue(item, f.Field)
		if err != nil {
			return false, err
		}
		cmp, err := compareValues(v, f.Value)
		if err != nil {
			return false, fmt.Errorf("error filtering on %s: %s", f.Field, err)
		}
		ok, err := evaluate(cmp, f.Compare)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func fieldValue(item any, field string) (reflect.Value, error) {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil entity")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("entity of kind %s has no fields", v.Kind())
	}
	fv := v.FieldByName(field)
	if !fv.IsValid() {
		return reflect.Value{}, fmt.Errorf("unknown field %s", field)
	}
	return fv, nil
}

func evaluate(cmp int, compare string) (bool, error) {
	switch compare {
	case "=", "==":
		return cmp == 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("unsupported comparator %q", compare)
	}
}

// compareValues returns -1, 0 or 1 comparing the field value with an arbitrary filter value.
func compareValues(field reflect.Value, value any) (int, error) {
	other := reflect.ValueOf(value)

	if t, ok := field.Interface().(time.Time); ok {
		o, ok := value.(time.Time)
		if !ok {
			return 0, fmt.Errorf("cannot compare time with %T", value)
		}
		return t.Compare(o), nil
	}

	switch field.Kind() {
	case reflect.String:
		if other.Kind() != reflect.String {
			return 0, fmt.Errorf("cannot compare string with %T", value)
		}
		return strings.Compare(field.String(), other.String()), nil
	case reflect.Bool:
		if other.Kind() != reflect.Bool {
			return 0, fmt.Errorf("cannot compare bool with %T", value)
		}
		a, b := field.Bool(), other.Bool()
		switch {
		case a == b:
			return 0, nil
		case !a:
			return -1, nil
		default:
			return 1, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		a, okA := asFloat(field)
		b, okB := asFloat(other)
		if !okA || !okB {
			return 0, fmt.Errorf("cannot compare number with %T", value)
		}
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("unsupported field kind %s", field.Kind())
	}
}

func asFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
