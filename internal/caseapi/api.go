// Package caseapi exposes complaint intake and the triage case queue
// over HTTP.
package caseapi

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/docket/internal/authmw"
	"github.com/linnemanlabs/docket/internal/triage"
)

// TriageService defines the business operations caseapi needs.
type TriageService interface {
	Submit(ctx context.Context, complaint string) (*triage.SubmitResult, error)
	Get(ctx context.Context, id string) (*triage.Case, bool, error)
	List(ctx context.Context) ([]*triage.Case, error)
	Summary(ctx context.Context) (*triage.Summary, error)
	Clear(ctx context.Context) error
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    TriageService
	token  string
}

// New creates a new API handler. An empty token disables auth.
func New(logger log.Logger, svc TriageService, token string) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("triage service is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
		token:  token,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		if a.token != "" {
			r.Use(authmw.BearerToken(a.token))
		}
		r.Post("/complaints", a.handleSubmitComplaint)
		r.Get("/cases", a.handleListCases)
		r.Delete("/cases", a.handleClearCases)
		r.Get("/cases/{id}", a.handleGetCase)
		r.Get("/summary", a.handleSummary)
	})
}

func (a *API) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("docket.case.id", id))

	c, ok, err := a.svc.Get(r.Context(), id)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to get case", "id", id)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	span.SetAttributes(attribute.String("docket.case.priority", string(c.Priority)))

	writeJSON(w, http.StatusOK, c)
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := a.svc.Summary(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to summarize queue")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (a *API) handleClearCases(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Clear(r.Context()); err != nil {
		a.logger.Error(r.Context(), err, "failed to clear queue")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// nothing useful to do with encode errors here
	_ = json.NewEncoder(w).Encode(v)
}
