package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ai-task-planner/internal/intake"
	"ai-task-planner/pkg/response"
)

// Start godoc
// @Summary     Open a review session
// @Tags        Intake
// @Produce     json
// @Success     200 {object} sessionResp
// @Router      /api/v1/intake/sessions [POST]
func (h *handler) Start(c *gin.Context) {
	snap, err := h.uc.Start(c.Request.Context())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}

// Get godoc
// @Summary     Get a review session
// @Tags        Intake
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/intake/sessions/{id} [GET]
func (h *handler) Get(c *gin.Context) {
	snap, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}

// SetInput godoc
// @Summary     Replace the raw input text
// @Tags        Intake
// @Accept      json
// @Produce     json
// @Param       id   path string   true "Session ID"
// @Param       body body inputReq true "Input text"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Session closed"
// @Router      /api/v1/intake/sessions/{id}/input [PUT]
func (h *handler) SetInput(c *gin.Context) {
	var req inputReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	snap, err := h.uc.SetInput(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}

// Analyze godoc
// @Summary     Extract candidate tasks
// @Description Accepts JSON {text} or multipart with an "audio" file part, never both.
// @Description Without either, the session's current input is analyzed. Extraction problems
// @Description yield an empty candidate list.
// @Tags        Intake
// @Accept      json,mpfd
// @Produce     json
// @Param       id    path     string     true  "Session ID"
// @Param       body  body     analyzeReq false "Text input"
// @Param       audio formData file       false "Audio recording"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Empty or mixed input"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Analysis in progress"
// @Router      /api/v1/intake/sessions/{id}/analyze [POST]
func (h *handler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	input, closer, err := h.processAnalyzeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	snap, err := h.uc.Analyze(ctx, input)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}

// UpdateCandidate godoc
// @Summary     Edit one candidate
// @Description Partial update. An explicit null datetime clears it.
// @Tags        Intake
// @Accept      json
// @Produce     json
// @Param       id    path string       true "Session ID"
// @Param       index path int          true "Candidate index"
// @Param       body  body candidateReq true "Fields to change"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Out of range"
// @Router      /api/v1/intake/sessions/{id}/candidates/{index} [PATCH]
func (h *handler) UpdateCandidate(c *gin.Context) {
	input, err := h.processCandidateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	snap, err := h.uc.UpdateCandidate(c.Request.Context(), input)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}

// RemoveCandidate godoc
// @Summary     Remove one candidate
// @Tags        Intake
// @Produce     json
// @Param       id    path string true "Session ID"
// @Param       index path int    true "Candidate index"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Out of range"
// @Router      /api/v1/intake/sessions/{id}/candidates/{index} [DELETE]
func (h *handler) RemoveCandidate(c *gin.Context) {
	index, err := h.processIndex(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	snap, err := h.uc.RemoveCandidate(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}

// Commit godoc
// @Summary     Persist all candidates
// @Description Creates every candidate as a pending task. The session closes whatever the outcome.
// @Description A partial failure answers 207 with the tasks that were created.
// @Tags        Intake
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} commitResp
// @Success     207 {object} commitResp "Partial failure"
// @Failure     400 {object} response.Resp "Nothing to commit or empty title"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/intake/sessions/{id}/commit [POST]
func (h *handler) Commit(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.Commit(ctx, c.Param("id"))
	if err != nil {
		var commitErr *intake.CommitError
		if errors.As(err, &commitErr) {
			response.Partial(c, commitErr.Error(), newCommitResp(commitErr.Created, commitErr.Attempted))
			return
		}
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newCommitResp(out.Created, len(out.Created)))
}

// Cancel godoc
// @Summary     Abandon a review session
// @Tags        Intake
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/intake/sessions/{id} [DELETE]
func (h *handler) Cancel(c *gin.Context) {
	if err := h.uc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, nil)
}

// StartVoice godoc
// @Summary     Start voice capture
// @Tags        Intake
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     403 {object} response.Resp "Microphone permission denied"
// @Failure     501 {object} response.Resp "Speech recognition unsupported"
// @Router      /api/v1/intake/sessions/{id}/voice/start [POST]
func (h *handler) StartVoice(c *gin.Context) {
	snap, err := h.uc.StartVoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}

// PushVoiceFragment godoc
// @Summary     Deliver a recognizer result
// @Tags        Intake
// @Accept      json
// @Produce     json
// @Param       id   path string      true "Session ID"
// @Param       body body fragmentReq true "Transcript fragment"
// @Success     200 {object} sessionResp
// @Failure     409 {object} response.Resp "Capture not active"
// @Router      /api/v1/intake/sessions/{id}/voice/fragments [POST]
func (h *handler) PushVoiceFragment(c *gin.Context) {
	var req fragmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	snap, err := h.uc.PushVoiceFragment(c.Request.Context(), intake.VoiceFragmentInput{
		SessionID: c.Param("id"),
		Text:      req.Text,
		Final:     req.Final,
	})
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}

// ReportVoiceError godoc
// @Summary     Report a recognizer error
// @Description Capture stops. "not-allowed" marks the microphone as refused.
// @Tags        Intake
// @Accept      json
// @Produce     json
// @Param       id   path string        true "Session ID"
// @Param       body body voiceErrorReq true "Recognizer error code"
// @Success     200 {object} sessionResp
// @Failure     403 {object} response.Resp "Microphone permission denied"
// @Router      /api/v1/intake/sessions/{id}/voice/error [POST]
func (h *handler) ReportVoiceError(c *gin.Context) {
	var req voiceErrorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	snap, err := h.uc.ReportVoiceError(c.Request.Context(), c.Param("id"), req.Error)
	if err != nil {
		response.Error(c, h.mapError(err), map[string]any{"session": newSessionResp(snap)})
		return
	}
	response.OK(c, newSessionResp(snap))
}

// StopVoice godoc
// @Summary     Stop voice capture
// @Tags        Intake
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Router      /api/v1/intake/sessions/{id}/voice/stop [POST]
func (h *handler) StopVoice(c *gin.Context) {
	snap, err := h.uc.StopVoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newSessionResp(snap))
}
