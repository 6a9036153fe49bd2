package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-task-planner/config"
	"ai-task-planner/internal/intake/extractor"
	"ai-task-planner/internal/intake/usecase"
	"ai-task-planner/internal/model"
	"ai-task-planner/internal/task"
	"ai-task-planner/pkg/datemath"
	"ai-task-planner/pkg/gemini"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockModel struct {
	mu   sync.Mutex
	text string
	reqs []gemini.GenerateRequest
}

func (m *mockModel) GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqs = append(m.reqs, req)
	return &gemini.GenerateResponse{Candidates: []gemini.Candidate{
		{Content: gemini.Content{Parts: []gemini.Part{{Text: m.text}}}},
	}}, nil
}

// mockCreator stores tasks in memory and fails titles listed in fail.
type mockCreator struct {
	mu      sync.Mutex
	created []task.CreateInput
	fail    map[string]bool
}

func (m *mockCreator) Create(ctx context.Context, in task.CreateInput) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[in.Title] {
		return model.Task{}, errors.New("insert failed")
	}
	m.created = append(m.created, in)
	return model.Task{
		ID:          int64(len(m.created)),
		Title:       in.Title,
		Description: in.Description,
		Datetime:    in.Datetime,
		Tags:        in.Tags,
		Status:      in.Status,
		CreatedAt:   time.Now(),
	}, nil
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

type sessionView struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	Input      string `json:"input"`
	Interim    string `json:"interim"`
	Recording  bool   `json:"recording"`
	CanCommit  bool   `json:"can_commit"`
	Candidates []struct {
		Index       int      `json:"index"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Datetime    *string  `json:"datetime"`
		Tags        []string `json:"tags"`
	} `json:"candidates"`
}

type testServer struct {
	r       *gin.Engine
	model   *mockModel
	creator *mockCreator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	parser, err := datemath.NewParser("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	m := &mockModel{text: `[]`}
	creator := &mockCreator{fail: map[string]bool{}}
	uc := usecase.New(&mockLogger{},
		extractor.New(m, &mockLogger{}, config.DefaultTags),
		extractor.NewNormalizer(parser),
		creator,
		usecase.Config{SessionTTL: time.Minute, MaxSessions: 10, VoiceEnabled: true, Location: loc},
	)

	h := New(&mockLogger{}, uc, parser)
	h.now = func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, loc) }

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), h)
	return &testServer{r: r, model: m, creator: creator}
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(t, req)
}

func (s *testServer) start(t *testing.T) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/intake/sessions", "")
	require.Equal(t, http.StatusOK, code)
	return decodeSession(t, env).ID
}

func decodeSession(t *testing.T, env envelope) sessionView {
	t.Helper()
	var v sessionView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestReviewFlow(t *testing.T) {
	s := newTestServer(t)
	s.model.text = `[{"title":"Gọi cho mẹ","description":"Gọi cho mẹ lúc 8h tối","datetime":"2024-06-10T20:00:00","tags":[]},{"title":"Mua sữa","datetime":"2024-06-11T08:00:00"}]`
	id := s.start(t)
	base := "/api/v1/intake/sessions/" + id

	code, env := s.do(t, http.MethodPost, base+"/analyze", `{"text":"Gọi cho mẹ lúc 8h tối và mua sữa vào sáng mai","reference_date":"2024-06-10"}`)
	require.Equal(t, http.StatusOK, code, env.Message)
	v := decodeSession(t, env)
	assert.Equal(t, "reviewing", v.State)
	assert.True(t, v.CanCommit)
	require.Len(t, v.Candidates, 2)
	assert.Equal(t, "2024-06-10T20:00:00", *v.Candidates[0].Datetime)
	assert.Equal(t, "Mua sữa", v.Candidates[1].Description)
	assert.Equal(t, []string{}, v.Candidates[1].Tags)

	code, env = s.do(t, http.MethodPatch, base+"/candidates/1", `{"title":"Mua sữa tươi","datetime":null}`)
	require.Equal(t, http.StatusOK, code, env.Message)
	v = decodeSession(t, env)
	assert.Equal(t, "Gọi cho mẹ", v.Candidates[0].Title)
	assert.Equal(t, "Mua sữa tươi", v.Candidates[1].Title)
	assert.Nil(t, v.Candidates[1].Datetime)

	code, env = s.do(t, http.MethodPatch, base+"/candidates/0", `{"datetime":"sáng mai"}`)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "2024-06-11T08:00:00", *decodeSession(t, env).Candidates[0].Datetime)

	code, _ = s.do(t, http.MethodPatch, base+"/candidates/7", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(t, http.MethodDelete, base+"/candidates/7", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(t, http.MethodDelete, base+"/candidates/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodPost, base+"/commit", "")
	require.Equal(t, http.StatusOK, code, env.Message)
	var out struct {
		Attempted int `json:"attempted"`
		Failed    int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 2, out.Attempted)
	assert.Equal(t, 0, out.Failed)
	require.Len(t, s.creator.created, 2)
	for _, c := range s.creator.created {
		assert.Equal(t, model.StatusPending, c.Status)
	}

	code, _ = s.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAnalyzeGuards(t *testing.T) {
	s := newTestServer(t)
	id := s.start(t)
	base := "/api/v1/intake/sessions/" + id

	code, _ := s.do(t, http.MethodPost, base+"/analyze", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "empty", decodeSession(t, env).State)

	code, _ = s.do(t, http.MethodPost, base+"/analyze", `{"text":"a","reference_date":"10/06/2024"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/v1/intake/sessions/nope/analyze", `{"text":"a"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPost, base+"/commit", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAnalyzeStoredInputAndMalformedModel(t *testing.T) {
	s := newTestServer(t)
	s.model.text = "Tôi không thể giúp"
	id := s.start(t)
	base := "/api/v1/intake/sessions/" + id

	code, _ := s.do(t, http.MethodPut, base+"/input", `{"text":"mua sữa"}`)
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodPost, base+"/analyze", "")
	require.Equal(t, http.StatusOK, code, env.Message)
	v := decodeSession(t, env)
	assert.Equal(t, "reviewing", v.State)
	assert.Empty(t, v.Candidates)
	assert.False(t, v.CanCommit)
}

func multipartAnalyze(t *testing.T, path, text string, audio []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if text != "" {
		require.NoError(t, mw.WriteField("text", text))
	}
	if audio != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="audio"; filename="rec.webm"`)
		hdr.Set("Content-Type", "audio/webm")
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(audio)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeAudio(t *testing.T) {
	s := newTestServer(t)
	s.model.text = `[{"title":"Đi bơi","tags":["Sức khỏe"]}]`
	id := s.start(t)
	path := "/api/v1/intake/sessions/" + id + "/analyze"

	code, _ := s.send(t, multipartAnalyze(t, path, "đi bơi", []byte("webm")))
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.send(t, multipartAnalyze(t, path, "", []byte("webm")))
	require.Equal(t, http.StatusOK, code, env.Message)
	v := decodeSession(t, env)
	require.Len(t, v.Candidates, 1)
	assert.Equal(t, []string{"Sức khỏe"}, v.Candidates[0].Tags)

	require.Len(t, s.model.reqs, 1)
	parts := s.model.reqs[0].Contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "audio/webm", parts[1].InlineData.MimeType)
	assert.Equal(t, "d2VibQ==", parts[1].InlineData.Data)
}

func TestCommitPartialFailure(t *testing.T) {
	s := newTestServer(t)
	s.model.text = `[{"title":"một"},{"title":"hai"},{"title":"ba"}]`
	s.creator.fail["hai"] = true
	id := s.start(t)
	base := "/api/v1/intake/sessions/" + id

	code, _ := s.do(t, http.MethodPost, base+"/analyze", `{"text":"một hai ba"}`)
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodPost, base+"/commit", "")
	assert.Equal(t, http.StatusMultiStatus, code)
	assert.Equal(t, http.StatusMultiStatus, env.ErrorCode)
	var out struct {
		Created []struct {
			Title string `json:"title"`
		} `json:"created"`
		Failed int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Len(t, out.Created, 2)
	assert.Equal(t, 1, out.Failed)

	code, _ = s.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestVoiceEndpoints(t *testing.T) {
	s := newTestServer(t)
	id := s.start(t)
	base := "/api/v1/intake/sessions/" + id

	code, _ := s.do(t, http.MethodPost, base+"/voice/fragments", `{"text":"early","final":true}`)
	assert.Equal(t, http.StatusConflict, code)

	code, env := s.do(t, http.MethodPost, base+"/voice/start", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decodeSession(t, env).Recording)

	code, env = s.do(t, http.MethodPost, base+"/voice/fragments", `{"text":"gọi cho"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "gọi cho", decodeSession(t, env).Interim)

	code, env = s.do(t, http.MethodPost, base+"/voice/fragments", `{"text":"gọi cho mẹ","final":true}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "gọi cho mẹ", decodeSession(t, env).Input)

	code, env = s.do(t, http.MethodPost, base+"/voice/stop", "")
	require.Equal(t, http.StatusOK, code)
	assert.False(t, decodeSession(t, env).Recording)
	code, _ = s.do(t, http.MethodPost, base+"/voice/stop", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, base+"/voice/start", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, base+"/voice/error", `{"error":"not-allowed"}`)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(t, http.MethodPost, base+"/voice/start", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNotFound, code)
}
