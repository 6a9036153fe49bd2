// Package app builds the long-lived components shared by the API server and
// the planner CLI from a loaded config.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ai-task-planner/config"
	"ai-task-planner/internal/intake"
	"ai-task-planner/internal/intake/extractor"
	intakeUC "ai-task-planner/internal/intake/usecase"
	"ai-task-planner/internal/task"
	"ai-task-planner/internal/task/repository"
	"ai-task-planner/internal/task/repository/postgre"
	"ai-task-planner/internal/task/repository/sqlite"
	taskUC "ai-task-planner/internal/task/usecase"
	"ai-task-planner/pkg/datemath"
	"ai-task-planner/pkg/gcalendar"
	"ai-task-planner/pkg/gemini"
	"ai-task-planner/pkg/log"
)

// Store is an opened task repository with its database handle.
type Store struct {
	Repo repository.Repository
	DB   *sql.DB
}

// Close releases the database.
func (s Store) Close() error {
	return s.DB.Close()
}

// OpenStore opens the configured database. The schema is not migrated.
func OpenStore(cfg *config.Config, l log.Logger, loc *time.Location) (Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return Store{}, err
		}
		return Store{Repo: sqlite.New(db, l, loc), DB: db}, nil
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return Store{}, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.Database.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		}
		return Store{Repo: postgre.New(db, l, loc), DB: db}, nil
	default:
		return Store{}, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// NewParser returns the datetime parser for the intake timezone.
func NewParser(cfg *config.Config) (*datemath.Parser, error) {
	return datemath.NewParser(cfg.Intake.Timezone)
}

// NewTaskUseCase builds the task usecase. Scheduled tasks are mirrored to
// Google Calendar when credentials are configured and usable.
func NewTaskUseCase(ctx context.Context, cfg *config.Config, l log.Logger, repo repository.Repository) task.UseCase {
	uc := taskUC.New(repo, l)
	if cfg.GoogleCalendar.CredentialsPath == "" {
		return uc
	}

	cal, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
	if err != nil {
		l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		l.Warn(ctx, "→ Run `planner calendar-auth` to generate the token file")
		return uc
	}
	l.Info(ctx, "✅ Google Calendar initialized")
	return uc.WithCalendar(cal, cfg.GoogleCalendar.CalendarID, cfg.Intake.Timezone)
}

// NewGenerator returns the model client. One call per analysis, no retries.
func NewGenerator(cfg *config.Config) (*gemini.Client, error) {
	client, err := gemini.New(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		APIURL:  cfg.Gemini.APIURL,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return client, nil
}

// NewIntakeUseCase builds the review pipeline on top of tasks.
func NewIntakeUseCase(cfg *config.Config, l log.Logger, tasks intake.TaskCreator, parser *datemath.Parser) (intake.UseCase, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}

	return intakeUC.New(l,
		extractor.New(gen, l, cfg.Intake.Tags),
		extractor.NewNormalizer(parser),
		tasks,
		intakeUC.Config{
			SessionTTL:    cfg.Intake.SessionTTL,
			MaxSessions:   cfg.Intake.MaxSessions,
			CommitTimeout: cfg.Intake.CommitTimeout,
			VoiceEnabled:  cfg.Voice.Enabled,
			Location:      parser.Location(),
		},
	), nil
}
