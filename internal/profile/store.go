package profile

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Store persists profile attribute values keyed by (field, owner).
type Store interface {
	// Get is the single-field read path; projections read through GetAll.
	Get(ctx context.Context, field, owner string) (string, bool, error)
	// GetAll returns every stored value of an owner in one round trip.
	GetAll(ctx context.Context, owner string) (map[string]string, error)
	Set(ctx context.Context, field, owner, value string) error
	Delete(ctx context.Context, field, owner string) error
}

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// NewStore picks a backend by name.
func NewStore(backend string, db *sqlx.DB, rdb *redis.Client) (Store, error) {
	switch backend {
	case BackendPostgres, "":
		if db == nil {
			return nil, fmt.Errorf("postgres profile store requires a database connection")
		}
		return NewPostgresStore(db), nil
	case BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis profile store requires a redis client")
		}
		return NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown profile store backend %q", backend)
	}
}
