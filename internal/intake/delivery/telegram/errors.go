package telegram

import (
	"errors"

	"ai-task-planner/internal/intake"
)

const (
	msgGenericError   = "Có lỗi xảy ra khi xử lý yêu cầu của bạn. Vui lòng thử lại."
	msgRateLimited    = "Bạn gửi tin nhắn quá nhanh. Vui lòng đợi một chút rồi thử lại."
	msgNoSession      = "Chưa có danh sách công việc nào. Hãy gửi mô tả công việc của bạn."
	msgNoTasks        = "⚠️ Không tìm thấy công việc nào trong tin nhắn của bạn. Hãy thử mô tả rõ ràng hơn."
	msgInFlight       = "⏳ Đang phân tích tin nhắn trước, vui lòng đợi."
	msgEmptyInput     = "Tin nhắn trống. Hãy mô tả công việc bạn cần làm."
	msgBadIndex       = "Số thứ tự không hợp lệ. Dùng /list để xem danh sách."
	msgEmptyTitle     = "Có công việc chưa có tiêu đề. Dùng /edit <số> <tiêu đề> để sửa."
	msgEditUsage      = "Cách dùng: /edit <số> <tiêu đề mới>"
	msgRemoveUsage    = "Cách dùng: /remove <số>"
	msgCancelled      = "Đã hủy danh sách công việc hiện tại."
	msgAnalyzing      = "⏳ Đang phân tích..."
	msgVoiceFailed    = "Không tải được tin nhắn thoại. Vui lòng thử lại."
	msgUnknownCommand = "Lệnh không được hỗ trợ. Gõ /help để xem hướng dẫn."
)

var errInvalidIndex = errors.New("invalid candidate index")

// errorMessage returns a user-facing error string for the given error.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, intake.ErrSessionNotFound):
		return msgNoSession
	case errors.Is(err, intake.ErrNoCandidates):
		return msgNoTasks
	case errors.Is(err, intake.ErrAnalysisInFlight):
		return msgInFlight
	case errors.Is(err, intake.ErrEmptyInput):
		return msgEmptyInput
	case errors.Is(err, intake.ErrCandidateIndex), errors.Is(err, errInvalidIndex):
		return msgBadIndex
	case errors.Is(err, intake.ErrEmptyTitle):
		return msgEmptyTitle
	default:
		return msgGenericError
	}
}
