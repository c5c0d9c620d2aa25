package simfeed

import (
	"net"
	"testing"
	"time"
)

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	a := New(42)
	b := New(42)
	for range 50 {
		ea, eb := a.NetworkEvent(now), b.NetworkEvent(now)
		if ea != eb {
			t.Fatalf("same seed produced different events: %+v vs %+v", ea, eb)
		}
	}
}

func TestNetworkEvent_Fields(t *testing.T) {
	t.Parallel()

	g := New(1)
	now := time.Now()

	for range 200 {
		e := g.NetworkEvent(now)
		if e.EventType == "" {
			t.Fatal("empty event type")
		}
		if e.Details == "" {
			t.Fatalf("empty details for %q", e.EventType)
		}
		if e.Severity != SeverityLow && e.Severity != SeverityMedium && e.Severity != SeverityHigh {
			t.Fatalf("invalid severity %q", e.Severity)
		}
		if net.ParseIP(e.SourceIP) == nil || net.ParseIP(e.DestinationIP) == nil {
			t.Fatalf("invalid IPs %q -> %q", e.SourceIP, e.DestinationIP)
		}
		if !e.Timestamp.Equal(now) {
			t.Fatalf("timestamp = %v, want %v", e.Timestamp, now)
		}
	}
}

func TestNetworkSeverity_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		eventType string
		want      Severity
	}{
		{"Normal traffic", SeverityLow},
		{"User login", SeverityLow},
		{"Failed login", SeverityMedium},
		{"Port scan detected", SeverityMedium},
		{"Unusual data upload", SeverityMedium},
		{"Access from foreign IP", SeverityHigh},
		{"Multiple failed logins", SeverityHigh},
		{"Malware signature detected", SeverityHigh},
	}
	for _, tt := range tests {
		if got := NetworkSeverity(tt.eventType); got != tt.want {
			t.Errorf("NetworkSeverity(%q) = %q, want %q", tt.eventType, got, tt.want)
		}
	}
}

func TestNetworkEvent_WeightsFavorBenignTraffic(t *testing.T) {
	t.Parallel()

	g := New(7)
	now := time.Now()

	counts := make(map[string]int)
	const n = 10000
	for range n {
		counts[g.NetworkEvent(now).EventType]++
	}

	// "Normal traffic" carries 40% of the weight; it must dominate any
	// of the 5%-weighted attack types by a wide margin.
	if counts["Normal traffic"] < counts["Port scan detected"] {
		t.Errorf("normal=%d port-scan=%d, weighting looks broken", counts["Normal traffic"], counts["Port scan detected"])
	}
	if counts["Normal traffic"] < n/4 {
		t.Errorf("normal traffic = %d of %d, want at least a quarter", counts["Normal traffic"], n)
	}
	for _, et := range networkEventTypes {
		if counts[et.Name] == 0 {
			t.Errorf("event type %q never generated in %d draws", et.Name, n)
		}
	}
}

func TestNetworkBacklog(t *testing.T) {
	t.Parallel()

	g := New(3)
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	events := g.NetworkBacklog(now, 40)
	if len(events) != 40 {
		t.Fatalf("len = %d, want 40", len(events))
	}
	for i := 1; i < len(events); i++ {
		if !events[i].Timestamp.After(events[i-1].Timestamp) {
			t.Fatalf("backlog not time-ordered at %d", i)
		}
	}
	if got := events[0].Timestamp; !got.Equal(now.Add(-40 * time.Minute)) {
		t.Errorf("first timestamp = %v, want %v", got, now.Add(-40*time.Minute))
	}
}

func TestIntrusionEvent_ResponseMatchesSeverity(t *testing.T) {
	t.Parallel()

	g := New(9)
	now := time.Now()

	seen := make(map[string]bool)
	for range 500 {
		e := g.IntrusionEvent(now)
		seen[e.Behavior] = true

		if want := intrusionSeverity[e.Behavior]; e.Severity != want {
			t.Fatalf("severity for %q = %q, want %q", e.Behavior, e.Severity, want)
		}
		if e.VoiceResponse != voiceResponses[e.Severity] {
			t.Fatalf("voice response mismatch for severity %q", e.Severity)
		}
		if e.Escalation != escalations[e.Severity] {
			t.Fatalf("escalation mismatch for severity %q", e.Severity)
		}
	}

	for _, b := range intrusionBehaviors {
		if !seen[b] {
			t.Errorf("behavior %q never generated", b)
		}
	}
}

func TestComplaint_DrawsFromSamples(t *testing.T) {
	t.Parallel()

	g := New(11)
	valid := make(map[string]bool, len(SampleComplaints))
	for _, c := range SampleComplaints {
		valid[c] = true
	}

	for range 100 {
		if c := g.Complaint(); !valid[c] {
			t.Fatalf("unexpected complaint %q", c)
		}
	}
}
