package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/docket/internal/classify"
	"github.com/linnemanlabs/docket/internal/triage"
)

func testCase() *triage.Case {
	return &triage.Case{
		ID:        "01JN123",
		Complaint: "they threaten to leak my photos",
		Category:  classify.CategoryCyberBullying,
		Priority:  classify.PriorityHigh,
		Unit:      classify.UnitHarassmentCell,
		CreatedAt: time.Date(2026, 8, 24, 14, 23, 0, 0, time.UTC),
	}
}

func TestSend_PostsToWebhook(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type = %q, want application/json", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL, log.Nop())
	if err := n.Send(context.Background(), testCase()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	blocks, ok := got["blocks"].([]any)
	if !ok {
		t.Fatal("expected blocks array in payload")
	}

	// header, divider, fields, divider, complaint, divider, context = 7 blocks
	if len(blocks) != 7 {
		t.Errorf("blocks count = %d, want 7", len(blocks))
	}

	header := blocks[0].(map[string]any)
	headerText := header["text"].(map[string]any)["text"].(string)
	if !strings.Contains(headerText, "High") {
		t.Errorf("header text = %q, want to contain High", headerText)
	}
	if !strings.Contains(headerText, "\U0001f534") {
		t.Error("header should contain red circle for high priority")
	}

	complaintSection := blocks[4].(map[string]any)
	complaintText := complaintSection["text"].(map[string]any)["text"].(string)
	if !strings.Contains(complaintText, "they threaten to leak my photos") {
		t.Errorf("complaint block = %q, want complaint text", complaintText)
	}
}

func TestSend_NoOpWithoutURL(t *testing.T) {
	t.Parallel()

	n := New("", log.Nop())
	if err := n.Send(context.Background(), testCase()); err != nil {
		t.Fatalf("Send with empty URL should be no-op, got: %v", err)
	}
}

func TestSend_TruncatesLongComplaint(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testCase()
	c.Complaint = strings.Repeat("x", 4000)

	n := New(srv.URL, log.Nop())
	if err := n.Send(context.Background(), c); err != nil {
		t.Fatalf("Send: %v", err)
	}

	blocks := got["blocks"].([]any)
	complaintSection := blocks[4].(map[string]any)
	text := complaintSection["text"].(map[string]any)["text"].(string)

	if len(text) > maxComplaintLen+len("*Complaint*\n\n") {
		t.Errorf("complaint text length = %d, expected <= %d", len(text), maxComplaintLen+len("*Complaint*\n\n"))
	}
	if !strings.HasSuffix(text, "...") {
		t.Error("expected truncated complaint to end with ...")
	}
}

func TestSend_WebhookErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	n := New(srv.URL, log.Nop())
	err := n.Send(context.Background(), testCase())
	if err == nil {
		t.Fatal("expected error for non-2xx webhook response")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error = %v, want to mention status 400", err)
	}
}

func TestPriorityEmoji(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priority classify.Priority
		want     string
	}{
		{classify.PriorityHigh, "\U0001f534"},
		{classify.PriorityMedium, "\U0001f7e1"},
		{classify.PriorityLow, "\U0001f7e2"},
	}
	for _, tt := range tests {
		if got := priorityEmoji(tt.priority); got != tt.want {
			t.Errorf("priorityEmoji(%q) = %q, want %q", tt.priority, got, tt.want)
		}
	}
}
