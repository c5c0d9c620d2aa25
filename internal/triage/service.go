package triage

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/docket/internal/classify"
)

// ErrEmptyComplaint is returned by Submit for blank complaint text.
var ErrEmptyComplaint = xerrors.New("complaint text is empty")

// SubmitResult is the outcome of submitting a complaint for triage.
type SubmitResult struct {
	Case      *Case
	Duplicate bool
}

// Service is the business boundary for triage operations.
type Service struct {
	store    Store
	logger   log.Logger
	metrics  *Metrics
	notifier Notifier
}

// NewService creates a new triage service. metrics and notifier may be nil.
func NewService(store Store, logger log.Logger, metrics *Metrics, notifier Notifier) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:    store,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
	}
}

// Submit accepts one complaint, classifies it synchronously, and
// persists the resulting case. Resubmissions of the same normalized
// text return the existing case with Duplicate set.
func (s *Service) Submit(ctx context.Context, complaint string) (*SubmitResult, error) {
	text := strings.TrimSpace(complaint)
	if text == "" {
		s.countSubmit("invalid")
		return nil, ErrEmptyComplaint
	}

	fp := Fingerprint(text)
	if existing, ok, err := s.store.GetByFingerprint(ctx, fp); err != nil {
		return nil, err
	} else if ok {
		s.countSubmit("duplicate")
		return &SubmitResult{Case: existing, Duplicate: true}, nil
	}

	start := time.Now()
	decision := classify.Classify(text)
	if s.metrics != nil {
		s.metrics.ClassifyDuration.Observe(time.Since(start).Seconds())
	}

	c := &Case{
		ID:          ulid.Make().String(),
		Fingerprint: fp,
		Complaint:   text,
		Category:    decision.Category,
		Priority:    decision.Priority,
		Unit:        decision.Unit,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Put(ctx, c); err != nil {
		s.countSubmit("store_error")
		return nil, err
	}

	s.countSubmit("accepted")
	if s.metrics != nil {
		s.metrics.CasesTotal.WithLabelValues(string(c.Category), string(c.Priority)).Inc()
	}

	s.logger.Info(ctx, "case accepted",
		"case_id", c.ID,
		"category", c.Category,
		"priority", c.Priority,
		"unit", c.Unit,
	)

	// High-priority cases page the handling unit. Delivery must not
	// block or fail the submission, hence the detached context.
	if s.notifier != nil && c.Priority == classify.PriorityHigh {
		go s.notify(context.WithoutCancel(ctx), c)
	}

	return &SubmitResult{Case: c}, nil
}

// Get retrieves a case by ID.
func (s *Service) Get(ctx context.Context, id string) (*Case, bool, error) {
	return s.store.Get(ctx, id)
}

// List returns the case queue ordered by priority rank, then by ID.
// ULIDs are time-ordered, so within a priority the oldest case is first.
func (s *Service) List(ctx context.Context) ([]*Case, error) {
	cases, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cases, func(i, j int) bool {
		if ri, rj := cases[i].Priority.Rank(), cases[j].Priority.Rank(); ri != rj {
			return ri < rj
		}
		return cases[i].ID < cases[j].ID
	})
	return cases, nil
}

// Summary counts the queue by priority and category.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	cases, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		Total:      len(cases),
		ByPriority: make(map[classify.Priority]int),
		ByCategory: make(map[classify.Category]int),
	}
	for _, c := range cases {
		sum.ByPriority[c.Priority]++
		sum.ByCategory[c.Category]++
	}
	return sum, nil
}

// Clear removes every case from the queue.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *Service) notify(ctx context.Context, c *Case) {
	err := s.notifier.Send(ctx, c)
	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.NotifyTotal.WithLabelValues(status).Inc()
	}
	if err != nil {
		s.logger.Error(ctx, err, "case notification failed", "case_id", c.ID)
	}
}

func (s *Service) countSubmit(result string) {
	if s.metrics != nil {
		s.metrics.SubmitsTotal.WithLabelValues(result).Inc()
	}
}
