package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps review session endpoints under /intake.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	sessions := rg.Group("/intake/sessions")
	{
		sessions.POST("", h.Start)
		sessions.GET("/:id", h.Get)
		sessions.DELETE("/:id", h.Cancel)
		sessions.PUT("/:id/input", h.SetInput)
		sessions.POST("/:id/analyze", h.Analyze)
		sessions.PATCH("/:id/candidates/:index", h.UpdateCandidate)
		sessions.DELETE("/:id/candidates/:index", h.RemoveCandidate)
		sessions.POST("/:id/commit", h.Commit)

		sessions.POST("/:id/voice/start", h.StartVoice)
		sessions.POST("/:id/voice/fragments", h.PushVoiceFragment)
		sessions.POST("/:id/voice/error", h.ReportVoiceError)
		sessions.POST("/:id/voice/stop", h.StopVoice)
	}
}
