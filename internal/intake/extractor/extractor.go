package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"ai-task-planner/internal/intake"
	"ai-task-planner/pkg/gemini"
	"ai-task-planner/pkg/log"
)

// Generator is the model call used by Extractor. *gemini.Client satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

// Extractor turns raw input into raw task objects through one model call.
type Extractor struct {
	gen  Generator
	l    log.Logger
	tags []string
}

// New creates an Extractor. tags is the vocabulary offered in the prompt.
func New(gen Generator, l log.Logger, tags []string) *Extractor {
	return &Extractor{
		gen:  gen,
		l:    l,
		tags: tags,
	}
}

// Extract returns the elements of the model's JSON array, one per task.
// It never fails: every error is logged with its kind and yields an empty
// list.
func (e *Extractor) Extract(ctx context.Context, in intake.ExtractionInput, ref time.Time) []json.RawMessage {
	if err := in.Validate(); err != nil {
		e.fail(ctx, FailureInvalidInput, err)
		return []json.RawMessage{}
	}

	req, err := e.buildRequest(in, ref)
	if err != nil {
		e.fail(ctx, FailureEncoding, err)
		return []json.RawMessage{}
	}

	resp, err := e.gen.GenerateContent(ctx, req)
	if err != nil {
		e.fail(ctx, FailureTransport, err)
		return []json.RawMessage{}
	}

	text, err := resp.Text()
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("blank text")
	}
	if err != nil {
		e.fail(ctx, FailureEmptyResponse, err)
		return []json.RawMessage{}
	}

	var parsed any
	cleaned := sanitizeJSONResponse(text)
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		e.fail(ctx, FailureMalformedJSON, err)
		e.l.Debugf(ctx, "%s: raw=%q", LogPrefixExtract, text)
		return []json.RawMessage{}
	}
	if _, ok := parsed.([]any); !ok {
		e.fail(ctx, FailureNotArray, errors.New("top-level value is not an array"))
		return []json.RawMessage{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		e.fail(ctx, FailureMalformedJSON, err)
		return []json.RawMessage{}
	}

	e.l.Infof(ctx, "%s: model returned %d item(s)", LogPrefixExtract, len(items))
	return items
}

func (e *Extractor) buildRequest(in intake.ExtractionInput, ref time.Time) (gemini.GenerateRequest, error) {
	var parts []gemini.Part
	if in.HasAudio() {
		data, err := Encode(in.Audio)
		if err != nil {
			return gemini.GenerateRequest{}, err
		}
		parts = []gemini.Part{
			{Text: BuildPrompt(ModeAudio, "", ref, e.tags)},
			{InlineData: &gemini.InlineData{MimeType: in.MimeType, Data: data}},
		}
	} else {
		parts = []gemini.Part{
			{Text: BuildPrompt(ModeText, in.Text, ref, e.tags)},
		}
	}

	return gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Role: "user", Parts: parts},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:      ExtractTemperature,
			ResponseMimeType: gemini.MimeTypeJSON,
			ResponseSchema:   Schema(),
		},
	}, nil
}

func (e *Extractor) fail(ctx context.Context, kind string, err error) {
	e.l.Warnf(ctx, "%s: kind=%s: %v", LogPrefixExtract, kind, err)
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// sanitizeJSONResponse removes markdown code fences and surrounding prose
// models sometimes add around JSON output.
func sanitizeJSONResponse(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}
