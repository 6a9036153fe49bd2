package telegram

import (
	"time"

	"github.com/gin-gonic/gin"

	"ai-task-planner/internal/intake"
	pkgLog "ai-task-planner/pkg/log"
	pkgTelegram "ai-task-planner/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Limiter caps how often one chat is served.
type Limiter interface {
	Allow(key string) bool
}

type handler struct {
	l       pkgLog.Logger
	uc      intake.UseCase
	bot     *pkgTelegram.Bot
	limiter Limiter
	loc     *time.Location
}

// New creates a new Telegram delivery handler. limiter may be nil.
func New(l pkgLog.Logger, uc intake.UseCase, bot *pkgTelegram.Bot, limiter Limiter, loc *time.Location) Handler {
	if loc == nil {
		loc = time.Local
	}
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		limiter: limiter,
		loc:     loc,
	}
}
