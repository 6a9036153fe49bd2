package usecase

import (
	"context"
	"time"

	"ai-task-planner/internal/task/repository"
	"ai-task-planner/pkg/gcalendar"
	"ai-task-planner/pkg/log"
)

// CalendarClient is the subset of the calendar client used to mirror tasks.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// implUseCase is the private implementation of task.UseCase.
type implUseCase struct {
	repo       repository.Repository
	l          log.Logger
	calendar   CalendarClient // optional
	calendarID string
	timezone   string
	now        func() time.Time
}

// New creates a new task UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
		now:  time.Now,
	}
}

// WithCalendar mirrors every scheduled task into the given calendar.
func (uc *implUseCase) WithCalendar(c CalendarClient, calendarID, timezone string) *implUseCase {
	uc.calendar = c
	uc.calendarID = calendarID
	uc.timezone = timezone
	return uc
}
