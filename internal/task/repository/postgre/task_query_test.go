package postgre

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ai-task-planner/internal/model"
	repo "ai-task-planner/internal/task/repository"
)

func TestBuildListQuery(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	r := &implRepository{loc: loc}

	t.Run("no filters", func(t *testing.T) {
		mods, args := r.buildListQuery(repo.ListTasksOptions{})
		assert.Equal(t, "WHERE 1=1 ORDER BY created_at DESC, id DESC", mods)
		assert.Empty(t, args)
	})

	t.Run("status and range", func(t *testing.T) {
		from := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
		to := from.AddDate(0, 0, 7)

		mods, args := r.buildListQuery(repo.ListTasksOptions{
			Status:  model.StatusPending,
			From:    &from,
			To:      &to,
			OrderBy: "datetime ASC",
		})
		assert.Equal(t, "WHERE status = $1 AND datetime >= $2 AND datetime < $3 ORDER BY datetime ASC, id DESC", mods)
		assert.Len(t, args, 3)
		assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), args[1])
	})

	t.Run("unknown ordering falls back", func(t *testing.T) {
		mods, _ := r.buildListQuery(repo.ListTasksOptions{OrderBy: "1; DROP TABLE tasks"})
		assert.Equal(t, "WHERE 1=1 ORDER BY created_at DESC, id DESC", mods)
	})
}

func TestWallClock(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	r := &implRepository{loc: loc}

	stored := r.toColumn(ptr(time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC), stored)

	back := r.wallClock(stored.(time.Time))
	assert.True(t, back.Equal(time.Date(2024, 6, 10, 20, 0, 0, 0, loc)))
	assert.Nil(t, r.toColumn(nil))
}

func ptr(t time.Time) *time.Time { return &t }

func TestCreateArgs_CreatedAtInConfiguredZone(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	r := &implRepository{
		loc: loc,
		now: func() time.Time { return time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC) },
	}

	args := r.createArgs(repo.CreateTaskOptions{
		Title:       "Họp nhóm",
		Description: "Họp nhóm dự án",
		Status:      model.StatusPending,
	})
	assert.Len(t, args, 6)
	assert.Nil(t, args[2])
	assert.Equal(t, "pending", args[4])
	// 13:00 UTC is 20:00 on the configured wall clock, whatever the server zone.
	assert.Equal(t, time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC), args[5])
}
