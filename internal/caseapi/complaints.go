package caseapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/docket/internal/classify"
	"github.com/linnemanlabs/docket/internal/triage"
)

type submitRequest struct {
	Complaint string `json:"complaint"`
}

type submitResponse struct {
	ID        string            `json:"id"`
	Duplicate bool              `json:"duplicate"`
	Category  classify.Category `json:"category"`
	Priority  classify.Priority `json:"priority"`
	Unit      classify.Unit     `json:"unit"`
}

func (a *API) handleSubmitComplaint(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	sr, err := a.svc.Submit(r.Context(), req.Complaint)
	if err != nil {
		if errors.Is(err, triage.ErrEmptyComplaint) {
			http.Error(w, `{"error":"complaint text is empty"}`, http.StatusBadRequest)
			return
		}
		a.logger.Error(r.Context(), err, "failed to submit complaint")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.String("docket.case.id", sr.Case.ID),
		attribute.String("docket.case.category", string(sr.Case.Category)),
		attribute.String("docket.case.priority", string(sr.Case.Priority)),
		attribute.Bool("docket.case.duplicate", sr.Duplicate),
	)

	writeJSON(w, http.StatusAccepted, submitResponse{
		ID:        sr.Case.ID,
		Duplicate: sr.Duplicate,
		Category:  sr.Case.Category,
		Priority:  sr.Case.Priority,
		Unit:      sr.Case.Unit,
	})
}
