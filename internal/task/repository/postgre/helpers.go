package postgre

import (
	"database/sql"
	"io/fs"
	"time"

	"github.com/lib/pq"

	"ai-task-planner/internal/model"
	repo "ai-task-planner/internal/task/repository"
)

const taskColumns = `id, title, description, datetime, tags, status, created_at`

func fsSub() (fs.FS, error) {
	return fs.Sub(migrationsFS, "migrations")
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one row selected with taskColumns.
func (r *implRepository) scanTask(row rowScanner) (model.Task, error) {
	var (
		t        model.Task
		datetime sql.NullTime
		tags     pq.StringArray
		status   string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &datetime, &tags, &status, &t.CreatedAt); err != nil {
		return model.Task{}, err
	}

	if datetime.Valid {
		dt := r.wallClock(datetime.Time)
		t.Datetime = &dt
	}
	t.Tags = []string(tags)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.Status = model.Status(status)
	t.CreatedAt = r.wallClock(t.CreatedAt)
	return t, nil
}

// wallClock reinterprets a TIMESTAMP value as wall-clock time in r.loc.
func (r *implRepository) wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), r.loc)
}

// toColumn converts a time into the naive form stored in TIMESTAMP columns.
func (r *implRepository) toColumn(t *time.Time) any {
	if t == nil {
		return nil
	}
	local := t.In(r.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
}

// createArgs binds an insert. created_at is set here because the column
// default would use the server's session timezone instead of r.loc.
func (r *implRepository) createArgs(opt repo.CreateTaskOptions) []any {
	now := r.now()
	return []any{opt.Title, opt.Description, r.toColumn(opt.Datetime), tagsArray(opt.Tags), string(opt.Status), r.toColumn(&now)}
}

func tagsArray(tags []string) any {
	if tags == nil {
		tags = []string{}
	}
	return pq.Array(tags)
}
