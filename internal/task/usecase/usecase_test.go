package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
	"ai-task-planner/internal/task/repository/sqlite"
	"ai-task-planner/internal/task/usecase"
	"ai-task-planner/pkg/gcalendar"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockCalendar struct {
	mu   sync.Mutex
	reqs []gcalendar.CreateEventRequest
	err  error
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: "evt"}, nil
}

var ict = time.FixedZone("ICT", 7*3600)

func newUseCase(t *testing.T) task.UseCase {
	t.Helper()
	uc, _ := newUseCaseWithCalendar(t, nil)
	return uc
}

func newUseCaseWithCalendar(t *testing.T, cal *mockCalendar) (task.UseCase, *mockCalendar) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.New(db, &mockLogger{}, ict)
	require.NoError(t, repo.Migrate(context.Background()))

	uc := usecase.New(repo, &mockLogger{})
	if cal != nil {
		uc.WithCalendar(cal, "primary", "Asia/Ho_Chi_Minh")
	}
	return uc, cal
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		created, err := uc.Create(ctx, task.CreateInput{Title: "Đọc sách", Description: "Đọc sách 30 phút"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, created.Status)
		assert.Equal(t, []string{}, created.Tags)
		assert.Nil(t, created.Datetime)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := uc.Create(ctx, task.CreateInput{Title: "  ", Description: "x"})
		assert.ErrorIs(t, err, task.ErrEmptyTitle)

		_, err = uc.Create(ctx, task.CreateInput{Title: "x"})
		assert.ErrorIs(t, err, task.ErrEmptyDescription)

		_, err = uc.Create(ctx, task.CreateInput{Title: "x", Description: "x", Status: "archived"})
		assert.ErrorIs(t, err, task.ErrInvalidStatus)
	})
}

func TestUpdate(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	dt := time.Date(2024, 6, 11, 8, 0, 0, 0, ict)

	created, err := uc.Create(ctx, task.CreateInput{Title: "Mua sữa", Description: "mua sữa vào sáng mai", Datetime: &dt, Tags: []string{"Mua sắm"}})
	require.NoError(t, err)

	t.Run("partial merge keeps other fields", func(t *testing.T) {
		updated, err := uc.Update(ctx, task.UpdateInput{ID: created.ID, Title: strPtr("Mua sữa tươi")})
		require.NoError(t, err)
		assert.Equal(t, "Mua sữa tươi", updated.Title)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, []string{"Mua sắm"}, updated.Tags)
		require.NotNil(t, updated.Datetime)
		assert.True(t, updated.Datetime.Equal(dt))
	})

	t.Run("status toggle", func(t *testing.T) {
		done := model.StatusCompleted
		updated, err := uc.Update(ctx, task.UpdateInput{ID: created.ID, Status: &done})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, updated.Status)
	})

	t.Run("explicit null clears datetime", func(t *testing.T) {
		updated, err := uc.Update(ctx, task.UpdateInput{ID: created.ID, ClearDatetime: true})
		require.NoError(t, err)
		assert.Nil(t, updated.Datetime)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := uc.Update(ctx, task.UpdateInput{ID: created.ID, Title: strPtr("")})
		assert.ErrorIs(t, err, task.ErrEmptyTitle)

		unchanged, err := uc.Detail(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mua sữa tươi", unchanged.Title)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := uc.Update(ctx, task.UpdateInput{ID: 999, Title: strPtr("x")})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestDeleteAndDetail(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, task.CreateInput{Title: "x", Description: "x"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), task.ErrTaskNotFound)

	_, err = uc.Detail(ctx, created.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestList(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.List(ctx, task.ListInput{Status: "unknown"})
	assert.ErrorIs(t, err, task.ErrInvalidStatus)

	from := time.Date(2024, 6, 17, 0, 0, 0, 0, ict)
	to := from.AddDate(0, 0, -7)
	_, err = uc.List(ctx, task.ListInput{From: &from, To: &to})
	assert.ErrorIs(t, err, task.ErrInvalidRange)

	_, err = uc.Create(ctx, task.CreateInput{Title: "a", Description: "a"})
	require.NoError(t, err)
	out, err := uc.List(ctx, task.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
}

func TestSetup(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	out, err := uc.Setup(ctx)
	require.NoError(t, err)
	assert.True(t, out.Seeded)
	assert.Equal(t, "Sample task", out.Sample.Title)
	assert.Equal(t, []string{"setup", "sample"}, out.Sample.Tags)

	again, err := uc.Setup(ctx)
	require.NoError(t, err)
	assert.False(t, again.Seeded)

	list, err := uc.List(ctx, task.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestCalendarMirror(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled tasks only", func(t *testing.T) {
		uc, cal := newUseCaseWithCalendar(t, &mockCalendar{})
		dt := time.Date(2024, 6, 10, 20, 0, 0, 0, ict)

		_, err := uc.Create(ctx, task.CreateInput{Title: "Gọi cho mẹ", Description: "Gọi cho mẹ", Datetime: &dt})
		require.NoError(t, err)
		_, err = uc.Create(ctx, task.CreateInput{Title: "Ghi chú", Description: "Ghi chú"})
		require.NoError(t, err)

		require.Len(t, cal.reqs, 1)
		assert.False(t, cal.reqs[0].AllDay)
		assert.Equal(t, time.Hour, cal.reqs[0].EndTime.Sub(cal.reqs[0].StartTime))
	})

	t.Run("midnight is all-day", func(t *testing.T) {
		uc, cal := newUseCaseWithCalendar(t, &mockCalendar{})
		day := time.Date(2024, 6, 12, 0, 0, 0, 0, ict)

		_, err := uc.Create(ctx, task.CreateInput{Title: "Nộp báo cáo", Description: "Nộp báo cáo", Datetime: &day})
		require.NoError(t, err)
		require.Len(t, cal.reqs, 1)
		assert.True(t, cal.reqs[0].AllDay)
	})

	t.Run("calendar failure does not fail create", func(t *testing.T) {
		uc, _ := newUseCaseWithCalendar(t, &mockCalendar{err: errors.New("quota exceeded")})
		dt := time.Date(2024, 6, 10, 20, 0, 0, 0, ict)

		created, err := uc.Create(ctx, task.CreateInput{Title: "x", Description: "x", Datetime: &dt})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})
}
