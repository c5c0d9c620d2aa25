// Package simfeed generates the simulated security-event streams used
// for demos and load testing: network threat logs, physical intrusion
// events, and canned cybercrime complaints. It stands in for real
// sensors and intake channels.
package simfeed

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Severity grades a simulated event.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Generator produces simulated events from a seeded source, so demo
// runs are reproducible.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator. The same seed yields the same event stream.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// SampleComplaints are the canned complaint texts used by the demo feeder.
var SampleComplaints = []string{
	"Someone hacked my Instagram account and is threatening to leak my photos if I don't pay.",
	"I received a fake bank SMS asking for my OTP, and after entering it, money was debited from my account.",
	"Unknown person is continuously calling and sending abusive WhatsApp messages to my daughter.",
	"I saw a work from home job offer on Telegram, paid a registration fee and then they blocked me.",
	"My email and Facebook accounts were hacked and the attacker is messaging my contacts.",
	"Our office computer received multiple login attempts from an unknown foreign IP.",
}

// Complaint returns one of the sample complaints at random.
func (g *Generator) Complaint() string {
	return SampleComplaints[g.rng.IntN(len(SampleComplaints))]
}

func (g *Generator) randomIP() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		1+g.rng.IntN(254), 1+g.rng.IntN(254), 1+g.rng.IntN(254), 1+g.rng.IntN(254))
}

// NetworkEvent is one simulated network log entry.
type NetworkEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	SourceIP      string    `json:"source_ip"`
	DestinationIP string    `json:"destination_ip"`
	EventType     string    `json:"event_type"`
	Severity      Severity  `json:"severity"`
	Details       string    `json:"details"`
}

// networkEventTypes weights benign traffic well above attack events.
var networkEventTypes = []struct {
	Name   string
	Weight int
}{
	{"Normal traffic", 40},
	{"User login", 20},
	{"Failed login", 15},
	{"Port scan detected", 5},
	{"Unusual data upload", 5},
	{"Access from foreign IP", 5},
	{"Multiple failed logins", 5},
	{"Malware signature detected", 5},
}

var networkDetails = map[string]string{
	"User login":                 "Successful user login.",
	"Failed login":               "3 consecutive failed logins for user ADMIN from unknown IP.",
	"Multiple failed logins":     "10+ failed logins within 1 minute - possible brute-force attack.",
	"Access from foreign IP":     "Access attempt from foreign IP not seen in last 30 days.",
	"Unusual data upload":        "Outbound traffic spike to external server.",
	"Port scan detected":         "Multiple ports probed from single IP.",
	"Malware signature detected": "Known malware signature found in HTTP payload.",
}

// NetworkSeverity derives the severity grade for a network event type.
func NetworkSeverity(eventType string) Severity {
	switch eventType {
	case "Normal traffic", "User login":
		return SeverityLow
	case "Failed login", "Port scan detected", "Unusual data upload":
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// NetworkEvent generates one simulated network log entry stamped at the
// given time.
func (g *Generator) NetworkEvent(at time.Time) NetworkEvent {
	eventType := g.weightedEventType()
	details, ok := networkDetails[eventType]
	if !ok {
		details = "Regular background network traffic."
	}
	return NetworkEvent{
		Timestamp:     at,
		SourceIP:      g.randomIP(),
		DestinationIP: g.randomIP(),
		EventType:     eventType,
		Severity:      NetworkSeverity(eventType),
		Details:       details,
	}
}

// NetworkBacklog seeds a demo with n events, one per minute, ending at now.
func (g *Generator) NetworkBacklog(now time.Time, n int) []NetworkEvent {
	events := make([]NetworkEvent, 0, n)
	for i := range n {
		events = append(events, g.NetworkEvent(now.Add(-time.Duration(n-i)*time.Minute)))
	}
	return events
}

func (g *Generator) weightedEventType() string {
	total := 0
	for _, e := range networkEventTypes {
		total += e.Weight
	}
	n := g.rng.IntN(total)
	for _, e := range networkEventTypes {
		if n < e.Weight {
			return e.Name
		}
		n -= e.Weight
	}
	return networkEventTypes[0].Name
}

// IntrusionEvent is one simulated physical surveillance event, with the
// deterrence response and escalation derived from its severity.
type IntrusionEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	Behavior      string    `json:"behavior"`
	Severity      Severity  `json:"severity"`
	VoiceResponse string    `json:"voice_response"`
	Escalation    string    `json:"escalation"`
}

var intrusionBehaviors = []string{
	"Normal movement",
	"Person loitering near gate",
	"Person moving in restricted area",
	"Abandoned object detected",
	"Attempt to climb fence",
	"Intrusion detected - unauthorized entry",
}

var intrusionSeverity = map[string]Severity{
	"Normal movement":                         SeverityLow,
	"Person loitering near gate":              SeverityMedium,
	"Person moving in restricted area":        SeverityMedium,
	"Abandoned object detected":               SeverityMedium,
	"Attempt to climb fence":                  SeverityHigh,
	"Intrusion detected - unauthorized entry": SeverityHigh,
}

var voiceResponses = map[Severity]string{
	SeverityLow:    "No response required.",
	SeverityMedium: "Automated voice: 'This area is under surveillance. Please move away from the restricted zone.'",
	SeverityHigh:   "Automated voice: 'Security Alert! You are entering a restricted area. Leave immediately!'",
}

var escalations = map[Severity]string{
	SeverityLow:    "No action required.",
	SeverityMedium: "Monitoring continues.",
	SeverityHigh:   "Alert sent to nearest on-duty officer.",
}

// IntrusionEvent generates one simulated surveillance event stamped at
// the given time.
func (g *Generator) IntrusionEvent(at time.Time) IntrusionEvent {
	behavior := intrusionBehaviors[g.rng.IntN(len(intrusionBehaviors))]
	severity := intrusionSeverity[behavior]
	return IntrusionEvent{
		Timestamp:     at,
		Behavior:      behavior,
		Severity:      severity,
		VoiceResponse: voiceResponses[severity],
		Escalation:    escalations[severity],
	}
}
