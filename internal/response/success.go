package response

import (
	"encoding/json"
	"net/http"
)

// SuccessEnvelope is the uniform success shape. Count, Filters and Summary
// are only present on list queries.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Filters any  `json:"filters,omitempty"`
	Summary any  `json:"summary,omitempty"`
	Data    any  `json:"data,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.write(w, r, status, SuccessEnvelope{
		Success: true,
		Data:    data,
	})
}

func (h *responseHandler) WriteList(w http.ResponseWriter, r *http.Request, status, count int, filters, summary, data any) {
	h.write(w, r, status, SuccessEnvelope{
		Success: true,
		Count:   &count,
		Filters: filters,
		Summary: summary,
		Data:    data,
	})
}

func (h *responseHandler) write(w http.ResponseWriter, _ *http.Request, status int, envelope SuccessEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		// Last-ditch logging; can't return an error now
		h.Log.Error("failed to encode success response", "error", err)
	}
}
