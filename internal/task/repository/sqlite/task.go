package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ai-task-planner/internal/model"
	repo "ai-task-planner/internal/task/repository"
)

var orderings = map[string]bool{
	"created_at DESC": true,
	"created_at ASC":  true,
	"datetime ASC":    true,
	"datetime DESC":   true,
}

// CreateTask inserts a new Task row and returns the created entity.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	tags, err := encodeTags(opt.Tags)
	if err != nil {
		r.l.Errorf(ctx, "%s encode tags: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}

	const query = `
	INSERT INTO tasks (title, description, datetime, tags, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, opt.Title, opt.Description, formatNullTime(opt.Datetime), tags, string(opt.Status), formatTime(r.now()))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.l.Errorf(ctx, "%s last id: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}

	t, err := r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: id})
	if err != nil || t.ID == 0 {
		return model.Task{}, repo.ErrFailedToInsert
	}
	return t, nil
}

// GetOneTask retrieves a single Task by id.
// Returns zero-value Task (ID == 0) when not found.
func (r *implRepository) GetOneTask(ctx context.Context, opt repo.GetOneTaskOptions) (model.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = ? LIMIT 1", taskColumns)

	t, err := r.scanTask(r.db.QueryRowContext(ctx, query, opt.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneTask"), err)
		return model.Task{}, repo.ErrFailedToGet
	}
	return t, nil
}

// ListTasks returns all Tasks matching the filters.
func (r *implRepository) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]model.Task, error) {
	where, args := buildWhere(opt)
	orderBy := opt.OrderBy
	if !orderings[orderBy] {
		orderBy = "created_at DESC"
	}
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE %s ORDER BY %s, id DESC", taskColumns, where, orderBy)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTasks"), err)
			return nil, repo.ErrFailedToList
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListTasks"), err)
		return nil, repo.ErrFailedToList
	}
	return tasks, nil
}

// CountTasks counts Tasks matching the filters.
func (r *implRepository) CountTasks(ctx context.Context, opt repo.ListTasksOptions) (int, error) {
	where, args := buildWhere(opt)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE "+where, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CountTasks"), err)
		return 0, repo.ErrFailedToList
	}
	return total, nil
}

// UpdateTask stores the given row and returns the updated entity.
// Returns zero-value Task when the id does not exist.
func (r *implRepository) UpdateTask(ctx context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	tags, err := encodeTags(opt.Tags)
	if err != nil {
		r.l.Errorf(ctx, "%s encode tags: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repo.ErrFailedToUpdate
	}

	const query = `
	UPDATE tasks
	SET title = ?, description = ?, datetime = ?, tags = ?, status = ?
	WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, opt.Title, opt.Description, formatNullTime(opt.Datetime), tags, string(opt.Status), opt.ID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repo.ErrFailedToUpdate
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Task{}, nil
	}
	return r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: opt.ID})
}

// DeleteTask removes a Task by id.
func (r *implRepository) DeleteTask(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

func buildWhere(opt repo.ListTasksOptions) (string, []any) {
	var conditions []string
	var args []any

	if opt.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(opt.Status))
	}
	if opt.From != nil {
		conditions = append(conditions, "datetime >= ?")
		args = append(args, formatTime(*opt.From))
	}
	if opt.To != nil {
		conditions = append(conditions, "datetime < ?")
		args = append(args, formatTime(*opt.To))
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}
