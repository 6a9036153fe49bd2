package usecase

import (
	"context"
	"time"

	"ai-task-planner/internal/model"
	"ai-task-planner/pkg/gcalendar"
)

const defaultEventDuration = time.Hour

// coalesce returns *newVal when provided, otherwise the existing value.
func coalesce[T any](newVal *T, existing T) T {
	if newVal != nil {
		return *newVal
	}
	return existing
}

// tryCreateCalendarEvent mirrors a scheduled task into the calendar.
// Failures are logged and never fail the create.
func (uc *implUseCase) tryCreateCalendarEvent(ctx context.Context, t model.Task) {
	if uc.calendar == nil || t.Datetime == nil {
		return
	}

	start := *t.Datetime
	allDay := start.Hour() == 0 && start.Minute() == 0 && start.Second() == 0
	end := start.Add(defaultEventDuration)
	if allDay {
		end = start.AddDate(0, 0, 1)
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.calendarID,
		Summary:     t.Title,
		Description: t.Description,
		StartTime:   start,
		EndTime:     end,
		Timezone:    uc.timezone,
		AllDay:      allDay,
	})
	if err != nil {
		uc.l.Warnf(ctx, "uc.Create: calendar event failed for task id=%d (non-fatal): %v", t.ID, err)
		return
	}
	uc.l.Infof(ctx, "uc.Create: task id=%d mirrored to calendar event %s", t.ID, event.ID)
}
