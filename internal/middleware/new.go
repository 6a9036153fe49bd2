package middleware

import (
	"ai-task-planner/pkg/log"
)

type Middleware struct {
	l           log.Logger
	corsOrigins []string
}

func New(l log.Logger, corsOrigins []string) Middleware {
	return Middleware{
		l:           l,
		corsOrigins: corsOrigins,
	}
}
