package http

import (
	"time"

	"ai-task-planner/internal/intake"
	"ai-task-planner/pkg/datemath"
	"ai-task-planner/pkg/log"
)

type handler struct {
	l      log.Logger
	uc     intake.UseCase
	parser *datemath.Parser
	now    func() time.Time
}

// New creates a new HTTP handler for review sessions.
func New(l log.Logger, uc intake.UseCase, parser *datemath.Parser) *handler {
	return &handler{
		l:      l,
		uc:     uc,
		parser: parser,
		now:    time.Now,
	}
}
