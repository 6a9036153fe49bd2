package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"ai-task-planner/internal/model"
)

// timeLayout sorts lexicographically because every value is stored in UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const taskColumns = `id, title, description, datetime, tags, status, created_at`

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func (r *implRepository) parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(r.loc), nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *implRepository) scanTask(row rowScanner) (model.Task, error) {
	var (
		t         model.Task
		datetime  sql.NullString
		tags      string
		status    string
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &datetime, &tags, &status, &createdAt); err != nil {
		return model.Task{}, err
	}

	if datetime.Valid {
		dt, err := r.parseTime(datetime.String)
		if err != nil {
			return model.Task{}, err
		}
		t.Datetime = &dt
	}

	t.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return model.Task{}, err
		}
	}

	created, err := r.parseTime(createdAt)
	if err != nil {
		return model.Task{}, err
	}
	t.CreatedAt = created
	t.Status = model.Status(status)
	return t, nil
}
