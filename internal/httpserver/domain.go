package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	intakeHTTP "ai-task-planner/internal/intake/delivery/http"
	taskHTTP "ai-task-planner/internal/task/delivery/http"
)

// setupTaskDomain registers /api/v1/tasks.
func (srv HTTPServer) setupTaskDomain(ctx context.Context, api *gin.RouterGroup) {
	h := taskHTTP.New(srv.l, srv.taskUC, srv.parser)
	taskHTTP.RegisterRoutes(api, h)

	srv.l.Infof(ctx, "Task domain registered")
}

// setupIntakeDomain registers /api/v1/intake/sessions.
func (srv HTTPServer) setupIntakeDomain(ctx context.Context, api *gin.RouterGroup) {
	h := intakeHTTP.New(srv.l, srv.intakeUC, srv.parser)
	intakeHTTP.RegisterRoutes(api, h)

	srv.l.Infof(ctx, "Intake domain registered")
}
