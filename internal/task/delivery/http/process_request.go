package http

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
)

// processCreateReq binds and validates the create task request body.
func (h *handler) processCreateReq(c *gin.Context) (task.CreateInput, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return task.CreateInput{}, err
	}
	if err := req.validate(); err != nil {
		return task.CreateInput{}, h.mapError(err)
	}

	var datetime *time.Time
	if req.Datetime != nil {
		dt, err := h.parseDatetime(*req.Datetime)
		if err != nil {
			return task.CreateInput{}, err
		}
		datetime = dt
	}
	return req.toInput(datetime), nil
}

// processListReq binds and validates the list query parameters.
func (h *handler) processListReq(c *gin.Context) (task.ListInput, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return task.ListInput{}, err
	}
	if err := req.validate(); err != nil {
		return task.ListInput{}, h.mapError(err)
	}

	from, err := h.parseDatetime(req.From)
	if err != nil {
		return task.ListInput{}, err
	}
	to, err := h.parseUpperBound(req.To)
	if err != nil {
		return task.ListInput{}, err
	}

	return task.ListInput{Status: model.Status(req.Status), From: from, To: to}, nil
}

// processUpdateReq binds and validates the update body + URI param.
func (h *handler) processUpdateReq(c *gin.Context) (task.UpdateInput, error) {
	id, err := h.processID(c)
	if err != nil {
		return task.UpdateInput{}, err
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return task.UpdateInput{}, err
	}
	req.ID = id
	if err := req.validate(); err != nil {
		return task.UpdateInput{}, h.mapError(err)
	}

	var datetime *time.Time
	if len(req.Datetime) > 0 && !req.datetimeIsNull() {
		var raw string
		if err := json.Unmarshal(req.Datetime, &raw); err != nil {
			return task.UpdateInput{}, errInvalidDatetime
		}
		if datetime, err = h.parseDatetime(raw); err != nil {
			return task.UpdateInput{}, err
		}
	}
	return req.toInput(datetime), nil
}

// processID reads the :id path parameter.
func (h *handler) processID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// parseDatetime reads an optional date/time. Empty input yields nil.
func (h *handler) parseDatetime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	res, ok := h.parser.ParseDateTime(s, h.now())
	if !ok {
		return nil, errInvalidDatetime
	}
	return &res.AbsoluteTime, nil
}

// parseUpperBound reads the exclusive end of a range. A bare date covers the
// whole day.
func (h *handler) parseUpperBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	res, ok := h.parser.ParseDateTime(s, h.now())
	if !ok {
		return nil, errInvalidDatetime
	}
	if res.IsAllDay {
		end := res.AbsoluteTime.AddDate(0, 0, 1)
		return &end, nil
	}
	return &res.AbsoluteTime, nil
}
