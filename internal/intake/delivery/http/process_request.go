package http

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ai-task-planner/internal/intake"
)

const (
	formFieldAudio         = "audio"
	formFieldText          = "text"
	formFieldReferenceDate = "reference_date"
	referenceDateLayout    = "2006-01-02"
	maxAudioBytes          = 20 << 20
)

// processAnalyzeReq reads either a JSON body or a multipart form with an
// audio part. The returned closer, when not nil, releases the uploaded file.
func (h *handler) processAnalyzeReq(c *gin.Context) (intake.AnalyzeInput, io.Closer, error) {
	input := intake.AnalyzeInput{SessionID: c.Param("id")}

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var req analyzeReq
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
				return intake.AnalyzeInput{}, nil, err
			}
		}
		ref, err := h.parseReferenceDate(req.ReferenceDate)
		if err != nil {
			return intake.AnalyzeInput{}, nil, err
		}
		input.Text = req.Text
		input.ReferenceDate = ref
		return input, nil, nil
	}

	ref, err := h.parseReferenceDate(c.PostForm(formFieldReferenceDate))
	if err != nil {
		return intake.AnalyzeInput{}, nil, err
	}
	input.ReferenceDate = ref
	if text := c.PostForm(formFieldText); text != "" {
		input.Text = &text
	}

	fh, err := c.FormFile(formFieldAudio)
	if err != nil {
		return input, nil, nil
	}
	if fh.Size > maxAudioBytes {
		return intake.AnalyzeInput{}, nil, errInvalidAudio
	}
	f, err := fh.Open()
	if err != nil {
		return intake.AnalyzeInput{}, nil, errInvalidAudio
	}
	input.Audio = f
	input.MimeType = fh.Header.Get("Content-Type")
	return input, f, nil
}

// processCandidateReq binds a partial candidate edit.
func (h *handler) processCandidateReq(c *gin.Context) (intake.UpdateCandidateInput, error) {
	index, err := h.processIndex(c)
	if err != nil {
		return intake.UpdateCandidateInput{}, err
	}

	var req candidateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return intake.UpdateCandidateInput{}, err
	}

	fields := intake.CandidateFields{
		Title:         req.Title,
		Description:   req.Description,
		Tags:          req.Tags,
		ClearDatetime: req.datetimeIsNull(),
	}
	if len(req.Datetime) > 0 && !fields.ClearDatetime {
		var raw string
		if err := json.Unmarshal(req.Datetime, &raw); err != nil {
			return intake.UpdateCandidateInput{}, errInvalidDatetime
		}
		res, ok := h.parser.ParseDateTime(raw, h.now())
		if !ok {
			return intake.UpdateCandidateInput{}, errInvalidDatetime
		}
		fields.Datetime = &res.AbsoluteTime
	}

	return intake.UpdateCandidateInput{
		SessionID: c.Param("id"),
		Index:     index,
		Fields:    fields,
	}, nil
}

// processIndex reads the :index path parameter.
func (h *handler) processIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, errInvalidIndex
	}
	return index, nil
}

// parseReferenceDate reads a YYYY-MM-DD anchor for relative dates in the
// configured timezone. Empty means now.
func (h *handler) parseReferenceDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if _, err := time.Parse(referenceDateLayout, s); err != nil {
		return time.Time{}, errInvalidDate
	}
	res, ok := h.parser.ParseDateTime(s, h.now())
	if !ok {
		return time.Time{}, errInvalidDate
	}
	return res.AbsoluteTime, nil
}
