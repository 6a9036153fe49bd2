package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ai-task-planner/config"
	_ "ai-task-planner/docs" // Swagger docs
	"ai-task-planner/internal/app"
	"ai-task-planner/internal/httpserver"
	"ai-task-planner/internal/intake"
	tgDelivery "ai-task-planner/internal/intake/delivery/telegram"
	"ai-task-planner/internal/middleware"
	"ai-task-planner/pkg/log"
	"ai-task-planner/pkg/telegram"
)

// @title       AI Task Planner API
// @description Turns free text and voice into reviewed, persisted tasks.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting AI Task Planner...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Database: %s", cfg.Database.Driver)

	// 3. Storage
	parser, err := app.NewParser(cfg)
	if err != nil {
		logger.Error(ctx, "Failed to create datetime parser: ", err)
		return
	}

	store, err := app.OpenStore(cfg, logger, parser.Location())
	if err != nil {
		logger.Error(ctx, "Failed to open database: ", err)
		return
	}
	defer store.Close()

	if err := store.Repo.Migrate(ctx); err != nil {
		logger.Error(ctx, "Failed to migrate database: ", err)
		return
	}

	// 4. Task domain
	taskUC := app.NewTaskUseCase(ctx, cfg, logger, store.Repo)

	// 5. Intake domain (needs the model)
	var (
		intakeUC        intake.UseCase
		telegramHandler tgDelivery.Handler
	)
	if cfg.Gemini.APIKey != "" {
		intakeUC, err = app.NewIntakeUseCase(cfg, logger, taskUC, parser)
		if err != nil {
			logger.Error(ctx, "Failed to initialize intake: ", err)
			return
		}
		logger.Info(ctx, "Intake pipeline initialized")

		if cfg.Telegram.BotToken != "" {
			bot := telegram.NewBot(cfg.Telegram.BotToken)
			limiter := middleware.NewLimiter(cfg.Telegram.RateLimitPerMin)
			telegramHandler = tgDelivery.New(logger, intakeUC, bot, limiter, parser.Location())
			registerWebhook(ctx, logger, cfg, bot)
		} else {
			logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
		}
	} else {
		logger.Warn(ctx, "Intake skipped: GEMINI_API_KEY is missing")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:                logger,
		Port:                  cfg.HTTPServer.Port,
		Mode:                  cfg.HTTPServer.Mode,
		Environment:           cfg.Environment.Name,
		CORSOrigins:           cfg.HTTPServer.CORSOrigins,
		Parser:                parser,
		TaskUC:                taskUC,
		IntakeUC:              intakeUC,
		IntakeRateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
		TelegramHandler:       telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// registerWebhook points Telegram at this server. The URL comes from config
// or, failing that, from a local ngrok tunnel.
func registerWebhook(ctx context.Context, logger log.Logger, cfg *config.Config, bot *telegram.Bot) {
	webhookURL := cfg.Telegram.WebhookURL
	if webhookURL == "" && cfg.Telegram.NgrokAPIURL != "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.Telegram.NgrokAPIURL)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}
	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook URL not configured, skipping registration")
		return
	}

	if err := bot.SetWebhook(ctx, webhookURL); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}
