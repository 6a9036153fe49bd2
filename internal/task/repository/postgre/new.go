package postgre

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"ai-task-planner/internal/task/repository"
	"ai-task-planner/internal/task/repository/migration"
	"ai-task-planner/pkg/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type implRepository struct {
	db  *sql.DB
	l   log.Logger
	loc *time.Location
	now func() time.Time
}

// New creates a new PostgreSQL-backed Repository for the task domain.
// Timestamps are stored as wall-clock time in loc.
func New(db *sql.DB, l log.Logger, loc *time.Location) repository.Repository {
	if db == nil {
		panic("task/repository/postgre: db is required")
	}
	if loc == nil {
		loc = time.Local
	}
	return &implRepository{db: db, l: l, loc: loc, now: time.Now}
}

// Migrate applies the embedded schema migrations.
func (r *implRepository) Migrate(ctx context.Context) error {
	sub, err := fsSub()
	if err != nil {
		return err
	}
	if err := migration.Run(ctx, r.db, sub, "$1"); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Migrate"), err)
		return repository.ErrFailedToMigrate
	}
	return nil
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/postgre.%s", method)
}
