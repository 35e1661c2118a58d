package mystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

const (
	createEntitiesTable = `CREATE TABLE IF NOT EXISTS entities (
	kind       TEXT        NOT NULL,
	uid        TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (kind, uid)
)`
	serializationFailure = "40001"
)

var validFieldName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type sharedPool struct {
	pool     *pgxpool.Pool
	refCount int
}

var (
	poolsMutex sync.Mutex
	pools      = map[string]*sharedPool{}
)

// acquirePool shares one pool per database-url so transactions can span stores.
func acquirePool(c context.Context, url string) (*pgxpool.Pool, func(), error) {
	poolsMutex.Lock()
	defer poolsMutex.Unlock()

	shared, exists := pools[url]
	if !exists {
		pool, err := pgxpool.New(c, url)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating postgres pool: %s", err)
		}
		_, err = pool.Exec(c, createEntitiesTable)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("error creating entities table: %s", err)
		}
		shared = &sharedPool{pool: pool}
		pools[url] = shared
	}
	shared.refCount++

	return shared.pool, func() {
		poolsMutex.Lock()
		defer poolsMutex.Unlock()
		shared.refCount--
		if shared.refCount == 0 {
			shared.pool.Close()
			delete(pools, url)
		}
	}, nil
}

type postgresStore[T any] struct {
	pool   *pgxpool.Pool
	kind   string
	logger mylog.Logger
}

func newPostgresStore[T any](c context.Context, url string) (*postgresStore[T], func(), error) {
	pool, release, err := acquirePool(c, url)
	if err != nil {
		return nil, nil, err
	}

	kind := kindOf[T]()

	return &postgresStore[T]{
		pool:   pool,
		kind:   kind,
		logger: mylog.New("store-" + kind),
	}, release, nil
}

func (s *postgresStore[T]) db(c context.Context) querier {
	if tx, ok := c.Value(ctxTransactionKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

func (s *postgresStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if _, ok := c.Value(ctxTransactionKey{}).(pgx.Tx); ok {
		return f(c)
	}

	var err error
	for i := 1; i <= maxTransactionAttempts; i++ {
		err = s.runInTransaction(c, f)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == serializationFailure {
				s.logger.Log(c, "", mylog.SeverityWarn, "Serialization failure on %s, retrying (%d of %d): %s", s.kind, i, maxTransactionAttempts, err)
				continue
			}
			return err
		}
		return nil
	}
	return err
}

func (s *postgresStore[T]) runInTransaction(c context.Context, f func(c context.Context) error) error {
	tx, err := s.pool.Begin(c)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	err = f(context.WithValue(c, ctxTransactionKey{}, tx))
	if err != nil {
		rollbackErr := tx.Rollback(c)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.logger.Log(c, "", mylog.SeverityError, "Error rolling-back transaction: %s", rollbackErr)
		}
		return err
	}

	err = tx.Commit(c)
	if err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func (s *postgresStore[T]) Put(c context.Context, uid string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling entity %s with uid %s: %s", s.kind, uid, err)
	}

	_, err = s.db(c).Exec(c,
		`INSERT INTO entities (kind, uid, data, updated_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (kind, uid) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		s.kind, uid, data)
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %w", s.kind, uid, err)
	}
	return nil
}

func (s *postgresStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	var value T

	sql := `SELECT data FROM entities WHERE kind = $1 AND uid = $2`
	if _, ok := c.Value(ctxTransactionKey{}).(pgx.Tx); ok {
		// lock the row for the remainder of the transaction
		sql += ` FOR UPDATE`
	}

	var data []byte
	err := s.db(c).QueryRow(c, sql, s.kind, uid).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return value, false, nil
		}
		return value, false, fmt.Errorf("error fetching entity %s with uid %s: %w", s.kind, uid, err)
	}

	err = json.Unmarshal(data, &value)
	if err != nil {
		return value, false, fmt.Errorf("error unmarshalling entity %s with uid %s: %s", s.kind, uid, err)
	}
	return value, true, nil
}

func (s *postgresStore[T]) List(c context.Context) ([]T, error) {
	return s.Query(c, nil, "")
}

func (s *postgresStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	sql, args, err := s.buildQuery(filters, orderByField)
	if err != nil {
		return nil, err
	}

	rows, err := s.db(c).Query(c, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying entities %s: %w", s.kind, err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var data []byte
		err = rows.Scan(&data)
		if err != nil {
			return nil, fmt.Errorf("error scanning entity %s: %s", s.kind, err)
		}
		var value T
		err = json.Unmarshal(data, &value)
		if err != nil {
			return nil, fmt.Errorf("error unmarshalling entity %s: %s", s.kind, err)
		}
		result = append(result, value)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities %s: %s", s.kind, err)
	}
	return result, nil
}

func (s *postgresStore[T]) buildQuery(filters []Filter, orderByField string) (string, []any, error) {
	var sb strings.Builder
	args := []any{s.kind}
	sb.WriteString(`SELECT data FROM entities WHERE kind = $1`)

	for _, f := range filters {
		if !validFieldName.MatchString(f.Field) {
			return "", nil, fmt.Errorf("invalid filter field %q", f.Field)
		}
		op := f.Compare
		if op == "==" {
			op = "="
		}
		switch op {
		case "=", "<", "<=", ">", ">=":
		default:
			return "", nil, fmt.Errorf("unsupported comparator %q", f.Compare)
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("invalid filter value for %s: %s", f.Field, err)
		}
		args = append(args, string(value))
		fmt.Fprintf(&sb, ` AND data->'%s' %s $%d::jsonb`, f.Field, op, len(args))
	}

	if orderByField == "" {
		sb.WriteString(` ORDER BY uid`)
	} else {
		direction := "ASC"
		if strings.HasPrefix(orderByField, "-") {
			direction = "DESC"
			orderByField = strings.TrimPrefix(orderByField, "-")
		}
		if !validFieldName.MatchString(orderByField) {
			return "", nil, fmt.Errorf("invalid order field %q", orderByField)
		}
		fmt.Fprintf(&sb, ` ORDER BY data->'%s' %s, uid`, orderByField, direction)
	}

	return sb.String(), args, nil
}

func (s *postgresStore[T]) Ping(c context.Context) error {
	return s.pool.Ping(c)
}
