package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finlog/finlog-backend/internal/middleware"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/internal/response"
)

type UserService interface {
	Register(ctx context.Context, uid, email, first, last string) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Register)
	r.Get("/me", h.Me)
	return r
}

// Register creates the user document for the verified principal and seeds
// the default category set.
func (h *userHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	uid := middleware.UID(r.Context())
	if err := h.UserSvc.Register(r.Context(), uid, req.Email, req.FirstName, req.LastName); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, nil)
}

func (h *userHandlers) Me(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	user, err := h.UserSvc.GetUser(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}
