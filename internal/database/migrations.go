package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// SQLite gets its indexes from the AnalysisRecord tags. Keep these on one
// line each; they mirror the tag names.
var postgresIndexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_analysis_records_user_time ON analysis_records(username, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_records_code ON analysis_records(crime_code)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_records_deleted_at ON analysis_records(deleted_at)`,
}

// Migrate brings a gorm-managed database up to the current schema. It is
// safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&AnalysisRecord{}); err != nil {
		return fmt.Errorf("failed to migrate analysis records: %w", err)
	}
	return nil
}

func migratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createAnalysisTable); err != nil {
		return fmt.Errorf("failed to create analysis table: %w", err)
	}
	for _, stmt := range postgresIndexStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}
	return nil
}
