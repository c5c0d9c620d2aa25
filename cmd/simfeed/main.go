// Simfeed generates simulated security events and complaints for demos
// and load testing. It writes events as JSON lines to stdout, or in
// complaints mode can submit them to a running docket API instead.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/linnemanlabs/docket/internal/simfeed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		mode     = flag.String("mode", "complaints", "event stream to generate: complaints, network, or intrusion")
		count    = flag.Int("count", 10, "number of events to generate (0 = run until interrupted)")
		interval = flag.Duration("interval", 0, "pause between events (0 = emit as fast as possible)")
		seed     = flag.Uint64("seed", 1, "random seed, same seed yields the same stream")
		apiURL   = flag.String("api", "", "docket API base URL, complaints mode only (empty = print to stdout)")
		token    = flag.String("token", "", "bearer token for API requests")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := simfeed.New(*seed)
	out := json.NewEncoder(os.Stdout)

	switch *mode {
	case "complaints":
		if *apiURL != "" {
			return feedAPI(ctx, g, *count, *interval, *apiURL, *token)
		}
		return emit(ctx, out, *count, *interval, func(at time.Time) any {
			return map[string]any{"timestamp": at, "complaint": g.Complaint()}
		})
	case "network":
		return emit(ctx, out, *count, *interval, func(at time.Time) any {
			return g.NetworkEvent(at)
		})
	case "intrusion":
		return emit(ctx, out, *count, *interval, func(at time.Time) any {
			return g.IntrusionEvent(at)
		})
	default:
		return fmt.Errorf("unknown mode %q (want complaints, network, or intrusion)", *mode)
	}
}

// emit writes count events as JSON lines, pausing interval between them.
// count == 0 means run until the context is cancelled.
func emit(ctx context.Context, out *json.Encoder, count int, interval time.Duration, next func(at time.Time) any) error {
	for i := 0; count == 0 || i < count; i++ {
		if err := out.Encode(next(time.Now())); err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
		if err := pause(ctx, interval); err != nil {
			return nil // interrupted, not an error
		}
	}
	return nil
}

// feedAPI submits sample complaints to a running docket API.
func feedAPI(ctx context.Context, g *simfeed.Generator, count int, interval time.Duration, apiURL, token string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	out := json.NewEncoder(os.Stdout)

	for i := 0; count == 0 || i < count; i++ {
		res, err := submitComplaint(ctx, client, apiURL, token, g.Complaint())
		if err != nil {
			return err
		}
		if err := out.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := pause(ctx, interval); err != nil {
			return nil
		}
	}
	return nil
}

// submitResult mirrors the API's submit response.
type submitResult struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Unit      string `json:"unit"`
}

func submitComplaint(ctx context.Context, client *http.Client, apiURL, token, complaint string) (*submitResult, error) {
	body, err := json.Marshal(map[string]string{"complaint": complaint})
	if err != nil {
		return nil, fmt.Errorf("marshal complaint: %w", err)
	}

	url := strings.TrimSuffix(apiURL, "/") + "/api/v1/complaints"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit complaint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("api returned %d: %s", resp.StatusCode, string(respBody))
	}

	var res submitResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &res, nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
