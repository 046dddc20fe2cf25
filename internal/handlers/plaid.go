package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/middleware"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/internal/response"
)

type PlaidService interface {
	CreateLinkToken(ctx context.Context, uid string) (string, error)
	ExchangePublicToken(ctx context.Context, uid, publicToken, institutionName string) (string, error)
	ListBanks(ctx context.Context, uid string) ([]*models.Bank, error)
	DeleteBank(ctx context.Context, uid, bankID string) error
	SyncTransactions(ctx context.Context, uid string, bankID *string) (dto.PlaidSyncResult, error)
}

type plaidHandlers struct {
	ResponseHandler response.ResponseHandler
	PlaidSvc        PlaidService
}

func NewPlaidHandlers(deps *Deps) *plaidHandlers {
	return &plaidHandlers{
		ResponseHandler: deps.ResponseHandler,
		PlaidSvc:        deps.PlaidSvc,
	}
}

func (h *plaidHandlers) PlaidRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/link-token", h.CreateLinkToken)
	r.Route("/banks", func(r chi.Router) {
		r.Post("/", h.LinkBank)
		r.Get("/", h.ListBanks)
		r.Delete("/{bankId}", h.DeleteBank)
	})
	r.Post("/sync", h.SyncTransactions)
	return r
}

func (h *plaidHandlers) CreateLinkToken(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	linkToken, err := h.PlaidSvc.CreateLinkToken(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"linkToken": linkToken})
}

func (h *plaidHandlers) LinkBank(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PublicToken     string `json:"publicToken"`
		InstitutionName string `json:"institutionName,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	uid := middleware.UID(r.Context())
	bankID, err := h.PlaidSvc.ExchangePublicToken(r.Context(), uid, body.PublicToken, body.InstitutionName)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"bankId": bankID})
}

func (h *plaidHandlers) ListBanks(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	banks, err := h.PlaidSvc.ListBanks(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, banks)
}

func (h *plaidHandlers) DeleteBank(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	bankID := chi.URLParam(r, "bankId")

	if err := h.PlaidSvc.DeleteBank(r.Context(), uid, bankID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *plaidHandlers) SyncTransactions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BankID *string `json:"bankId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) { // allow empty body
		h.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	uid := middleware.UID(r.Context())
	result, err := h.PlaidSvc.SyncTransactions(r.Context(), uid, body.BankID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
