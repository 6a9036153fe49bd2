package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ai-task-planner/internal/intake"
	pkgResponse "ai-task-planner/pkg/response"
	pkgTelegram "ai-task-planner/pkg/telegram"
)

const (
	defaultVoiceMime = "audio/ogg"
	datetimeLayout   = "02/01/2006 15:04"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a background goroutine,
// since a model call can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message

	go func() {
		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, msgGenericError)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	chatID := msg.Chat.ID
	sessionID := sessionIDFor(chatID)

	if h.limiter != nil && !h.limiter.Allow(sessionID) {
		h.l.Warnf(ctx, "telegram handler: rate limit exceeded for chat %d", chatID)
		return h.bot.SendMessage(ctx, chatID, msgRateLimited)
	}

	if msg.Voice != nil {
		return h.handleVoice(ctx, chatID, msg.Voice)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "/") {
		return h.handleCommand(ctx, chatID, text)
	}
	return h.handleText(ctx, chatID, text)
}

func (h *handler) handleCommand(ctx context.Context, chatID int64, text string) error {
	cmd, args, _ := strings.Cut(text, " ")
	// Commands may arrive as /cmd@botname in groups.
	cmd, _, _ = strings.Cut(cmd, "@")
	args = strings.TrimSpace(args)
	sessionID := sessionIDFor(chatID)

	switch cmd {
	case "/start":
		return h.bot.SendMessageWithMode(ctx, chatID,
			"👋 Chào mừng đến với *AI Task Planner*!\n\nGửi cho tôi mô tả công việc bằng văn bản hoặc tin nhắn thoại, tôi sẽ tách thành danh sách công việc để bạn xem lại trước khi lưu.\n\n_Ví dụ: \"Sáng mai 9h họp nhóm, chiều thứ 6 đi mua sắm\"_",
			"Markdown",
		)
	case "/help":
		return h.bot.SendMessageWithMode(ctx, chatID,
			"*Hướng dẫn sử dụng:*\n\n"+
				"Gửi văn bản hoặc tin nhắn thoại mô tả công việc.\n\n"+
				"/list - xem danh sách hiện tại\n"+
				"/edit <số> <tiêu đề> - sửa tiêu đề\n"+
				"/remove <số> - bỏ một công việc\n"+
				"/save - lưu tất cả\n"+
				"/cancel - hủy danh sách",
			"Markdown",
		)
	case "/list":
		snap, err := h.uc.Get(ctx, sessionID)
		if err != nil {
			return h.reply(ctx, chatID, err)
		}
		return h.bot.SendMessage(ctx, chatID, h.formatCandidates(snap))
	case "/edit":
		idxStr, title, _ := strings.Cut(args, " ")
		title = strings.TrimSpace(title)
		if idxStr == "" || title == "" {
			return h.bot.SendMessage(ctx, chatID, msgEditUsage)
		}
		idx, err := parseIndex(idxStr)
		if err != nil {
			return h.reply(ctx, chatID, err)
		}
		snap, err := h.uc.UpdateCandidate(ctx, intake.UpdateCandidateInput{
			SessionID: sessionID,
			Index:     idx,
			Fields:    intake.CandidateFields{Title: &title},
		})
		if err != nil {
			return h.reply(ctx, chatID, err)
		}
		return h.bot.SendMessage(ctx, chatID, h.formatCandidates(snap))
	case "/remove":
		if args == "" {
			return h.bot.SendMessage(ctx, chatID, msgRemoveUsage)
		}
		idx, err := parseIndex(args)
		if err != nil {
			return h.reply(ctx, chatID, err)
		}
		snap, err := h.uc.RemoveCandidate(ctx, sessionID, idx)
		if err != nil {
			return h.reply(ctx, chatID, err)
		}
		if len(snap.Candidates) == 0 {
			return h.bot.SendMessage(ctx, chatID, "Danh sách đã trống.")
		}
		return h.bot.SendMessage(ctx, chatID, h.formatCandidates(snap))
	case "/save":
		return h.handleSave(ctx, chatID)
	case "/cancel":
		if err := h.uc.Cancel(ctx, sessionID); err != nil && !errors.Is(err, intake.ErrSessionNotFound) {
			return h.reply(ctx, chatID, err)
		}
		return h.bot.SendMessage(ctx, chatID, msgCancelled)
	default:
		return h.bot.SendMessage(ctx, chatID, msgUnknownCommand)
	}
}

func (h *handler) handleText(ctx context.Context, chatID int64, text string) error {
	sessionID := sessionIDFor(chatID)
	if _, err := h.uc.Resume(ctx, sessionID); err != nil {
		return err
	}

	if err := h.bot.SendMessage(ctx, chatID, msgAnalyzing); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	snap, err := h.uc.Analyze(ctx, intake.AnalyzeInput{SessionID: sessionID, Text: &text})
	if err != nil {
		return h.reply(ctx, chatID, err)
	}
	return h.sendReview(ctx, chatID, snap)
}

func (h *handler) handleVoice(ctx context.Context, chatID int64, v *pkgTelegram.Voice) error {
	sessionID := sessionIDFor(chatID)

	file, err := h.bot.GetFile(ctx, v.FileID)
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: get voice file failed: %v", err)
		return h.bot.SendMessage(ctx, chatID, msgVoiceFailed)
	}
	data, err := h.bot.DownloadFile(ctx, file.FilePath)
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: download voice file failed: %v", err)
		return h.bot.SendMessage(ctx, chatID, msgVoiceFailed)
	}

	mime := v.MimeType
	if mime == "" {
		mime = defaultVoiceMime
	}

	if _, err := h.uc.Resume(ctx, sessionID); err != nil {
		return err
	}
	if err := h.bot.SendMessage(ctx, chatID, msgAnalyzing); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	snap, err := h.uc.Analyze(ctx, intake.AnalyzeInput{
		SessionID: sessionID,
		Audio:     bytes.NewReader(data),
		MimeType:  mime,
	})
	if err != nil {
		return h.reply(ctx, chatID, err)
	}
	return h.sendReview(ctx, chatID, snap)
}

func (h *handler) handleSave(ctx context.Context, chatID int64) error {
	out, err := h.uc.Commit(ctx, sessionIDFor(chatID))

	var commitErr *intake.CommitError
	if errors.As(err, &commitErr) {
		h.l.Warnf(ctx, "telegram handler: partial commit for chat %d: %v", chatID, err)
		return h.bot.SendMessage(ctx, chatID, fmt.Sprintf(
			"⚠️ Đã lưu %d/%d công việc. %d công việc không lưu được.",
			len(commitErr.Created), commitErr.Attempted, len(commitErr.Failed),
		))
	}
	if err != nil {
		return h.reply(ctx, chatID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Đã lưu %d công việc!\n", len(out.Created))
	for i, t := range out.Created {
		fmt.Fprintf(&b, "\n%d. %s", i+1, t.Title)
		if t.Datetime != nil {
			fmt.Fprintf(&b, " (%s)", t.Datetime.In(h.loc).Format(datetimeLayout))
		}
	}
	return h.bot.SendMessage(ctx, chatID, b.String())
}

func (h *handler) sendReview(ctx context.Context, chatID int64, snap intake.Snapshot) error {
	if len(snap.Candidates) == 0 {
		return h.bot.SendMessage(ctx, chatID, msgNoTasks)
	}
	return h.bot.SendMessage(ctx, chatID, h.formatCandidates(snap)+"\n\nGõ /save để lưu, /edit hoặc /remove để chỉnh sửa.")
}

// reply sends the user-facing text for err. Unknown errors are logged.
func (h *handler) reply(ctx context.Context, chatID int64, err error) error {
	msg := errorMessage(err)
	if msg == msgGenericError {
		h.l.Errorf(ctx, "telegram handler: chat %d: %v", chatID, err)
	}
	return h.bot.SendMessage(ctx, chatID, msg)
}

func (h *handler) formatCandidates(snap intake.Snapshot) string {
	if len(snap.Candidates) == 0 {
		return msgNoSession
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Tìm thấy %d công việc:\n", len(snap.Candidates))
	for i, c := range snap.Candidates {
		fmt.Fprintf(&b, "\n%d. %s", i+1, c.Title)
		if c.Description != "" && c.Description != c.Title {
			fmt.Fprintf(&b, "\n   %s", c.Description)
		}
		if c.Datetime != nil {
			fmt.Fprintf(&b, "\n   🕒 %s", c.Datetime.In(h.loc).Format(datetimeLayout))
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, "\n   🏷 %s", strings.Join(c.Tags, ", "))
		}
	}
	return b.String()
}

// parseIndex converts a 1-based list number into a candidate index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errInvalidIndex
	}
	return n - 1, nil
}

func sessionIDFor(chatID int64) string {
	return fmt.Sprintf("telegram_%d", chatID)
}
