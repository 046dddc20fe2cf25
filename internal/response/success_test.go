package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finlog/finlog-backend/internal/dto"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	testHandler().WriteSuccess(rr, testRequest(), http.StatusCreated, map[string]string{"id": "c1"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q, want application/json", ct)
	}

	var resp struct {
		Success bool              `json:"success"`
		Count   *int              `json:"count"`
		Data    map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("success = false, want true")
	}
	if resp.Count != nil {
		t.Fatalf("count must be absent on plain success writes")
	}
	if resp.Data["id"] != "c1" {
		t.Fatalf("data = %v, want the payload", resp.Data)
	}
}

func TestWriteListEnvelope(t *testing.T) {
	filters := dto.TransactionFilters{Type: "expense", MinAmount: "100"}
	summary := dto.Summary{TotalExpense: 600, Balance: -600}

	rr := httptest.NewRecorder()
	testHandler().WriteList(rr, testRequest(), http.StatusOK, 2, filters, summary, []string{"t1", "t2"})

	var resp struct {
		Success bool                   `json:"success"`
		Count   *int                   `json:"count"`
		Filters dto.TransactionFilters `json:"filters"`
		Summary dto.Summary            `json:"summary"`
		Data    []string               `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count == nil || *resp.Count != 2 {
		t.Fatalf("count = %v, want 2", resp.Count)
	}
	if resp.Filters != filters {
		t.Fatalf("filters = %+v, want the echoed inputs", resp.Filters)
	}
	if resp.Summary != summary {
		t.Fatalf("summary = %+v, want %+v", resp.Summary, summary)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("data = %v, want 2 entries", resp.Data)
	}
}
