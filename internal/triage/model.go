package triage

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/linnemanlabs/docket/internal/classify"
)

// Case is one triaged complaint in the queue.
type Case struct {
	ID          string            `json:"id"`
	Fingerprint string            `json:"fingerprint"`
	Complaint   string            `json:"complaint"`
	Category    classify.Category `json:"category"`
	Priority    classify.Priority `json:"priority"`
	Unit        classify.Unit     `json:"unit"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Summary aggregates the case queue for the dashboard metrics row.
type Summary struct {
	Total      int                       `json:"total"`
	ByPriority map[classify.Priority]int `json:"by_priority"`
	ByCategory map[classify.Category]int `json:"by_category"`
}

// Fingerprint derives a stable identifier from complaint text for
// deduplication. Case and interior whitespace are normalized first so
// trivially reformatted resubmissions collapse to the same case.
func Fingerprint(text string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
