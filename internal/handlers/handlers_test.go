package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"familywallet/internal/service"
)

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithJSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body = %v", body)
	}
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithError(rec, http.StatusBadRequest, "something went wrong")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "something went wrong" {
		t.Errorf("body = %v", body)
	}
}

func TestIdeasEndpoint(t *testing.T) {
	// nil generator: AI is disabled and the endpoint answers with fallback text
	handler := NewInsightHandler(nil, service.NewInsightService(nil))

	t.Run("valid kind with disabled AI returns fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/ideas",
			strings.NewReader(`{"kind": "missions", "context": "ребенок 8 лет"}`))
		rec := httptest.NewRecorder()

		handler.Ideas(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var body struct {
			Text  string   `json:"text"`
			Items []string `json:"items"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if body.Text == "" {
			t.Error("expected fallback text, got empty string")
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/ideas",
			strings.NewReader(`{"kind": "stories", "context": "ctx"}`))
		rec := httptest.NewRecorder()

		handler.Ideas(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/ideas", strings.NewReader("not json"))
		rec := httptest.NewRecorder()

		handler.Ideas(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	Logging(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !called {
		t.Fatal("wrapped handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
