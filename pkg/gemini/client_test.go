package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-task-planner/pkg/gemini"
)

func TestNew(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); !errors.Is(err, gemini.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	c, err := gemini.New(gemini.Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Model() != gemini.DefaultModel {
		t.Errorf("expected default model, got %s", c.Model())
	}
}

func TestClient_GenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if r.URL.Path != "/models/"+gemini.DefaultModel+":generateContent" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req gemini.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		text := req.Contents[0].Parts[0].Text
		if text == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
			return
		}

		if text == "structured" {
			gc := req.GenerationConfig
			if gc == nil || gc.ResponseMimeType != gemini.MimeTypeJSON || gc.ResponseSchema == nil ||
				gc.ResponseSchema.Type != gemini.TypeArray {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if len(req.Contents[0].Parts) != 2 || req.Contents[0].Parts[1].InlineData == nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [
				{
					"content": {
						"parts": [
							{ "text": "mocked " },
							{ "text": "response string" }
						],
						"role": "model"
					}
				}
			]
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client.SetAPIURL(ts.URL)

	t.Run("Success Flow", func(t *testing.T) {
		req := gemini.GenerateRequest{
			Contents: []gemini.Content{
				{Parts: []gemini.Part{{Text: "Hello world"}}},
			},
		}

		resp, err := client.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text, err := resp.Text()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "mocked response string" {
			t.Errorf("unexpected content response: %s", text)
		}
	})

	t.Run("Structured Output With Inline Data", func(t *testing.T) {
		req := gemini.GenerateRequest{
			Contents: []gemini.Content{{
				Role: "user",
				Parts: []gemini.Part{
					{Text: "structured"},
					{InlineData: &gemini.InlineData{MimeType: "audio/webm", Data: "AAEC"}},
				},
			}},
			GenerationConfig: &gemini.GenerationConfig{
				ResponseMimeType: gemini.MimeTypeJSON,
				ResponseSchema:   &gemini.Schema{Type: gemini.TypeArray, Items: &gemini.Schema{Type: gemini.TypeObject}},
			},
		}

		if _, err := client.GenerateContent(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		req := gemini.GenerateRequest{
			Contents: []gemini.Content{
				{Parts: []gemini.Part{{Text: "cause_500"}}},
			},
		}

		_, err := client.GenerateContent(context.Background(), req)
		var apiErr *gemini.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", apiErr.StatusCode)
		}
	})
}

func TestGenerateResponse_Text(t *testing.T) {
	var empty gemini.GenerateResponse
	if _, err := empty.Text(); !errors.Is(err, gemini.ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}
