// Package slack sends case notifications to Slack via incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/docket/internal/classify"
	"github.com/linnemanlabs/docket/internal/triage"
)

const (
	maxComplaintLen = 3000
	httpTimeout     = 10 * time.Second
)

// Notifier posts triaged cases to a Slack webhook.
type Notifier struct {
	webhookURL string
	logger     log.Logger
	client     *http.Client
}

// New creates a new Slack notifier. If webhookURL is empty, Send is a no-op.
func New(webhookURL string, logger log.Logger) *Notifier {
	if logger == nil {
		logger = log.Nop()
	}
	return &Notifier{
		webhookURL: webhookURL,
		logger:     logger,
		client:     &http.Client{Timeout: httpTimeout},
	}
}

// Send posts a case to the configured Slack webhook.
// If no webhook URL is configured, it returns nil immediately.
func (n *Notifier) Send(ctx context.Context, c *triage.Case) error {
	if n.webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(buildMessage(c))
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req) //nolint:gosec // G704: webhookURL is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(respBody))
	}

	n.logger.Info(ctx, "case notification sent", "case_id", c.ID, "priority", c.Priority)
	return nil
}

func buildMessage(c *triage.Case) map[string]any {
	return map[string]any{
		"blocks": []map[string]any{
			headerBlock(c),
			{"type": "divider"},
			fieldsBlock(c),
			{"type": "divider"},
			complaintBlock(c),
			{"type": "divider"},
			contextBlock(c),
		},
	}
}

func headerBlock(c *triage.Case) map[string]any {
	text := fmt.Sprintf("%s New %s Priority Case", priorityEmoji(c.Priority), c.Priority)

	return map[string]any{
		"type": "header",
		"text": map[string]any{
			"type": "plain_text",
			"text": text,
		},
	}
}

func fieldsBlock(c *triage.Case) map[string]any {
	fields := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Category:* %s", c.Category),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Priority:* %s", c.Priority),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Suggested Unit:* %s", c.Unit),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Case:* %s", c.ID),
		},
	}

	return map[string]any{
		"type":   "section",
		"fields": fields,
	}
}

func complaintBlock(c *triage.Case) map[string]any {
	text := truncate(c.Complaint, maxComplaintLen)
	if text == "" {
		text = "_No complaint text._"
	}

	return map[string]any{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Complaint*\n\n%s", text),
		},
	}
}

func contextBlock(c *triage.Case) map[string]any {
	elements := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("docket • case %s • %s", c.ID, c.CreatedAt.UTC().Format("2006-01-02 15:04 UTC")),
		},
	}

	return map[string]any{
		"type":     "context",
		"elements": elements,
	}
}

func priorityEmoji(p classify.Priority) string {
	switch p {
	case classify.PriorityHigh:
		return "\U0001f534" // red circle
	case classify.PriorityMedium:
		return "\U0001f7e1" // yellow circle
	default:
		return "\U0001f7e2" // green circle
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
