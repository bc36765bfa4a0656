package database

import (
	"context"
	"errors"
	"strings"
)

// ErrStoreDisabled is returned by Open when no connection string is set.
var ErrStoreDisabled = errors.New("analysis store disabled")

// Store is the append-only log of analyses.
type Store interface {
	SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error
	RecentAnalyses(ctx context.Context, username string, limit int) ([]AnalysisRecord, error)
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open picks a backend from the connection string: postgres:// and
// postgresql:// URLs use Postgres, anything else is a SQLite path.
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "":
		return nil, ErrStoreDisabled
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresStore(ctx, dsn)
	default:
		db, err := Initialize(dsn)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	}
}

// Backend names the store implementation for logs.
func Backend(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}
