package caseapi

import (
	"net/http"

	"github.com/linnemanlabs/docket/internal/classify"
	"github.com/linnemanlabs/docket/internal/triage"
)

type listResponse struct {
	Count int            `json:"count"`
	Cases []*triage.Case `json:"cases"`
}

// handleListCases returns the prioritized queue, optionally filtered to
// a single priority level via ?priority=High|Medium|Low.
func (a *API) handleListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := a.svc.List(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list cases")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	if raw := r.URL.Query().Get("priority"); raw != "" {
		want := classify.Priority(raw)
		if !want.Valid() {
			http.Error(w, `{"error":"unknown priority"}`, http.StatusBadRequest)
			return
		}
		filtered := cases[:0]
		for _, c := range cases {
			if c.Priority == want {
				filtered = append(filtered, c)
			}
		}
		cases = filtered
	}

	if cases == nil {
		cases = []*triage.Case{}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Count: len(cases),
		Cases: cases,
	})
}
