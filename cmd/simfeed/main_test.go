package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubmitComplaint(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/v1/complaints" {
			t.Errorf("path = %s, want /api/v1/complaints", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q, want %q", got, "Bearer tok")
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["complaint"] == "" {
			t.Error("empty complaint in request body")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "01JN456",
			"duplicate": false,
			"category":  "Online Financial Fraud / Phishing",
			"priority":  "Medium",
		})
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 2 * time.Second}
	res, err := submitComplaint(context.Background(), client, srv.URL, "tok", "money was debited from my account")
	if err != nil {
		t.Fatalf("submitComplaint: %v", err)
	}
	if res.ID != "01JN456" {
		t.Errorf("ID = %q, want %q", res.ID, "01JN456")
	}
	if res.Priority != "Medium" {
		t.Errorf("Priority = %q, want Medium", res.Priority)
	}
}

func TestSubmitComplaint_TrailingSlashAndNoToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/complaints" {
			t.Errorf("path = %s, want /api/v1/complaints", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("authorization = %q, want empty", got)
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"x"}`))
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 2 * time.Second}
	if _, err := submitComplaint(context.Background(), client, srv.URL+"/", "", "test complaint"); err != nil {
		t.Fatalf("submitComplaint: %v", err)
	}
}

func TestSubmitComplaint_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 2 * time.Second}
	_, err := submitComplaint(context.Background(), client, srv.URL, "bad", "test complaint")
	if err == nil {
		t.Fatal("expected error for non-202 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want to mention status 401", err)
	}
}

func TestPause(t *testing.T) {
	t.Parallel()

	if err := pause(context.Background(), 0); err != nil {
		t.Errorf("pause with zero interval: %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pause(cancelled, time.Minute); err == nil {
		t.Error("expected error when context is cancelled")
	}

	start := time.Now()
	if err := pause(context.Background(), 10*time.Millisecond); err != nil {
		t.Errorf("pause: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("pause returned after %v, want at least 10ms", elapsed)
	}
}
