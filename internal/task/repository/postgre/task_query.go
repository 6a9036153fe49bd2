package postgre

import (
	"fmt"
	"strings"

	repo "ai-task-planner/internal/task/repository"
)

// orderings is the whitelist of accepted ORDER BY clauses.
var orderings = map[string]bool{
	"created_at DESC": true,
	"created_at ASC":  true,
	"datetime ASC":    true,
	"datetime DESC":   true,
}

// buildWhere builds the WHERE conditions + args shared by list and count.
func (r *implRepository) buildWhere(opt repo.ListTasksOptions) (string, []any) {
	var conditions []string
	var args []any
	idx := 1

	if opt.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, string(opt.Status))
		idx++
	}
	if opt.From != nil {
		conditions = append(conditions, fmt.Sprintf("datetime >= $%d", idx))
		args = append(args, r.toColumn(opt.From))
		idx++
	}
	if opt.To != nil {
		conditions = append(conditions, fmt.Sprintf("datetime < $%d", idx))
		args = append(args, r.toColumn(opt.To))
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

// buildListQuery builds the WHERE + ORDER clause for ListTasks.
func (r *implRepository) buildListQuery(opt repo.ListTasksOptions) (string, []any) {
	where, args := r.buildWhere(opt)

	orderBy := opt.OrderBy
	if !orderings[orderBy] {
		orderBy = "created_at DESC"
	}
	return fmt.Sprintf("WHERE %s ORDER BY %s, id DESC", where, orderBy), args
}
