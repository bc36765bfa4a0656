package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createAnalysisTable = `
	CREATE TABLE IF NOT EXISTS analysis_records (
		id              BIGSERIAL PRIMARY KEY,
		record_id       UUID NOT NULL UNIQUE,
		username        VARCHAR(255) NOT NULL,
		crime_code      VARCHAR(255) NOT NULL,
		jurisdiction    VARCHAR(255) NOT NULL,
		additional_info TEXT NOT NULL DEFAULT '',
		category        VARCHAR(32) NOT NULL DEFAULT '',
		result          JSONB NOT NULL,
		failed          BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at      TIMESTAMPTZ
	)`

// PostgresStore keeps analysis records in Postgres through a pgx pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore connects, pings and migrates.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	s := &PostgresStore{db: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	return migratePostgres(ctx, s.db)
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error {
	query := `
		INSERT INTO analysis_records (
			record_id, username, crime_code, jurisdiction, additional_info,
			category, result, failed, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $9
		) RETURNING id`

	var id int64
	err := s.db.QueryRow(
		ctx, query,
		rec.RecordID,
		rec.Username,
		rec.CrimeCode,
		rec.Jurisdiction,
		rec.AdditionalInfo,
		rec.Category,
		rec.Result,
		rec.Failed,
		rec.CreatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	rec.ID = uint(id)
	return nil
}

func (s *PostgresStore) RecentAnalyses(ctx context.Context, username string, limit int) ([]AnalysisRecord, error) {
	query := `
		SELECT id, record_id::text, username, crime_code, jurisdiction,
			additional_info, category, result::text, failed, created_at, updated_at
		FROM analysis_records
		WHERE username = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var id int64
		if err := rows.Scan(
			&id,
			&rec.RecordID,
			&rec.Username,
			&rec.CrimeCode,
			&rec.Jurisdiction,
			&rec.AdditionalInfo,
			&rec.Category,
			&rec.Result,
			&rec.Failed,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		rec.ID = uint(id)
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
