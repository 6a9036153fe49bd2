package gcalendar_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"ai-task-planner/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

const mockCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"project_id": "test-project",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"]
	}
}`

func testClient(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestCredentials(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")

	t.Run("Broken credentials", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`), tokenPath)
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("Installed app without token", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), tokenPath)
		if !errors.Is(err, gcalendar.ErrTokenMissing) {
			t.Fatalf("expected ErrTokenMissing, got %v", err)
		}
	})

	t.Run("Installed app with saved token", func(t *testing.T) {
		tok := &oauth2.Token{AccessToken: "dummy", TokenType: "Bearer", Expiry: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
		if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
			t.Fatalf("unexpected error saving token: %v", err)
		}

		loaded, err := gcalendar.LoadToken(tokenPath)
		if err != nil {
			t.Fatalf("unexpected error loading token: %v", err)
		}
		if loaded.AccessToken != "dummy" {
			t.Errorf("unexpected token %q", loaded.AccessToken)
		}

		if _, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), tokenPath); err != nil {
			t.Fatalf("expected client creation to succeed: %v", err)
		}
	})

	t.Run("Installed app bad token", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		os.WriteFile(bad, []byte(`{"broken": true`), 0600)

		if _, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(mockCreds), bad); err == nil {
			t.Fatalf("expected parsing to fail on bad token")
		}
	})

	t.Run("From file", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsFile(context.Background(), filepath.Join(dir, "missing.json"), tokenPath); err == nil {
			t.Errorf("expected reading file error")
		}
	})

	t.Run("OAuth config", func(t *testing.T) {
		cfg, err := gcalendar.OAuthConfigFromJSON([]byte(mockCreds))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ClientID != "test-client-id.apps.googleusercontent.com" {
			t.Errorf("unexpected client id %q", cfg.ClientID)
		}
	})
}

func TestCreateEvent(t *testing.T) {
	t.Run("Timed event", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/calendar/v3/calendars/primary/events" || r.Method != http.MethodPost {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			var body map[string]map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["start"]["dateTime"] == "" || body["start"]["timeZone"] != "Asia/Ho_Chi_Minh" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "event-123", "htmlLink": "https://calendar.google.com/event-uri"}`))
		})

		event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			Summary:   "Gọi cho mẹ",
			StartTime: time.Now(),
			EndTime:   time.Now().Add(time.Hour),
			Timezone:  "Asia/Ho_Chi_Minh",
		})
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		if event.ID != "event-123" || event.HtmlLink != "https://calendar.google.com/event-uri" {
			t.Errorf("unexpected event: %+v", event)
		}
	})

	t.Run("All-day event", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["start"]["date"] != "2024-06-11" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "event-456"}`))
		})

		day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
		if _, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			CalendarID: "primary",
			Summary:    "Mua sữa",
			StartTime:  day,
			EndTime:    day.AddDate(0, 0, 1),
			AllDay:     true,
		}); err != nil {
			t.Fatalf("failed to create all-day event: %v", err)
		}
	})

	t.Run("API error", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		if _, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			Summary:   "Title",
			StartTime: time.Now(),
			EndTime:   time.Now().Add(time.Hour),
		}); err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})
}
