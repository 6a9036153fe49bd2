package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ai-task-planner/internal/intake"
	tgDelivery "ai-task-planner/internal/intake/delivery/telegram"
	"ai-task-planner/internal/task"
	"ai-task-planner/pkg/datemath"
	"ai-task-planner/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	corsOrigins []string

	// Shared
	parser *datemath.Parser

	// Task domain
	taskUC task.UseCase

	// Intake domain
	intakeUC        intake.UseCase
	intakeRPM       int
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	CORSOrigins []string

	Parser *datemath.Parser

	// Task domain
	TaskUC task.UseCase

	// Intake domain, optional
	IntakeUC              intake.UseCase
	IntakeRateLimitPerMin int // per client IP
	TelegramHandler       tgDelivery.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.Default(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		corsOrigins:     cfg.CORSOrigins,
		parser:          cfg.Parser,
		taskUC:          cfg.TaskUC,
		intakeUC:        cfg.IntakeUC,
		intakeRPM:       cfg.IntakeRateLimitPerMin,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskUC == nil {
		return errors.New("task usecase is required")
	}
	if srv.parser == nil {
		return errors.New("datetime parser is required")
	}
	return nil
}
