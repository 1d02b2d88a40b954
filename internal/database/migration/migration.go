package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_conferences",
		SQL: `CREATE TABLE IF NOT EXISTS conferences (
  id               BIGSERIAL        PRIMARY KEY,
  title            TEXT             NOT NULL DEFAULT '',
  kind             TEXT             NOT NULL DEFAULT '' CHECK (kind IN ('', 'Academic', 'Commercial')),
  date             TIMESTAMPTZ      NULL,
  duration_minutes DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (duration_minutes >= 0),
  registered_count INTEGER          NOT NULL DEFAULT 0 CHECK (registered_count >= 0),
  score            DOUBLE PRECISION NULL,
  keynote_id       BIGINT           NULL,
  version          BIGINT           NOT NULL DEFAULT 1,
  created_at       TIMESTAMPTZ      NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_reviews",
		SQL: `CREATE TABLE IF NOT EXISTS reviews (
  id            BIGSERIAL   PRIMARY KEY,
  conference_id BIGINT      NOT NULL REFERENCES conferences (id) ON DELETE CASCADE,
  date          TIMESTAMPTZ NULL,
  comment       TEXT        NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_index_reviews_conference_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reviews_conference_id ON reviews (conference_id);`,
	},
	{
		Name: "create_index_conferences_keynote_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_conferences_keynote_id ON conferences (keynote_id);`,
	},
}

// EnsureMigrated checks if the 'reviews' table exists and runs migrations if it doesn't.
// reviews is created last, so its presence means every step has been applied.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.reviews') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
