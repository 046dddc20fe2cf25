package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/middleware"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/internal/response"
)

type CategoryService interface {
	Create(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error)
	Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*dto.UpdateCategoryResponse, error)
	Delete(ctx context.Context, uid, categoryID string) (*models.Category, error)
	List(ctx context.Context, uid, categoryType string) ([]dto.CategoryResponse, error)
}

type categoryHandlers struct {
	ResponseHandler response.ResponseHandler
	CategorySvc     CategoryService
}

func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		CategorySvc:     deps.CategorySvc,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/list", h.List)
	r.Post("/add", h.Add)
	r.Put("/edit/{categoryId}", h.Edit)
	r.Delete("/delete/{categoryId}", h.Delete)
	return r
}

func (h *categoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	categoryType := r.URL.Query().Get("type")

	cats, err := h.CategorySvc.List(r.Context(), uid, categoryType)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteList(w, r, http.StatusOK, len(cats), nil, nil, cats)
}

func (h *categoryHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	uid := middleware.UID(r.Context())
	cat, err := h.CategorySvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, cat)
}

func (h *categoryHandlers) Edit(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	var req dto.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	uid := middleware.UID(r.Context())
	resp, err := h.CategorySvc.Update(r.Context(), uid, categoryID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *categoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	uid := middleware.UID(r.Context())

	cat, err := h.CategorySvc.Delete(r.Context(), uid, categoryID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cat)
}
