package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/middleware"
	"github.com/finlog/finlog-backend/internal/response"
)

type TransactionService interface {
	Create(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	Delete(ctx context.Context, uid, transactionID string) (*dto.TransactionResponse, error)
	Query(ctx context.Context, uid string, filters dto.TransactionFilters) (*dto.TransactionListResult, error)
	Expenses(ctx context.Context, uid string, filters dto.TransactionFilters) (*dto.TransactionListResult, error)
	Incomes(ctx context.Context, uid string, filters dto.TransactionFilters) (*dto.TransactionListResult, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/add", h.Add)
	r.Get("/list", h.List)
	r.Get("/expenses", h.Expenses)
	r.Get("/incomes", h.Incomes)
	r.Put("/edit/{transactionId}", h.Edit)
	r.Delete("/delete/{transactionId}", h.Delete)
	return r
}

// parseFilters pulls the raw filter inputs off the query string; parsing and
// validation happen in the query composer.
func parseFilters(r *http.Request) dto.TransactionFilters {
	q := r.URL.Query()
	return dto.TransactionFilters{
		Category:  q.Get("category"),
		Type:      q.Get("type"),
		MinAmount: q.Get("minAmount"),
		MaxAmount: q.Get("maxAmount"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

func (h *transactionHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.TransactionSvc.Query)
}

func (h *transactionHandlers) Expenses(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.TransactionSvc.Expenses)
}

func (h *transactionHandlers) Incomes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.TransactionSvc.Incomes)
}

func (h *transactionHandlers) list(w http.ResponseWriter, r *http.Request, query func(context.Context, string, dto.TransactionFilters) (*dto.TransactionListResult, error)) {
	uid := middleware.UID(r.Context())
	filters := parseFilters(r)

	result, err := query(r.Context(), uid, filters)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteList(w, r, http.StatusOK,
		len(result.Transactions), filters, result.Summary, result.Transactions)
}

func (h *transactionHandlers) Edit(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.Update(r.Context(), uid, transactionID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())

	tx, err := h.TransactionSvc.Delete(r.Context(), uid, transactionID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}
