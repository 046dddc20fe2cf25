package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/middleware"
	"github.com/finlog/finlog-backend/internal/models"
)

type stubResponseHandler struct {
	successCalled bool
	successStatus int
	successData   any

	listCalled  bool
	listStatus  int
	listCount   int
	listFilters any
	listSummary any
	listData    any

	handleErrorCalled bool
	handleError       error

	writeErrorCalled bool
	writeErrorStatus int
	writeErrorCode   string
	writeErrorMsg    string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	s.successCalled = true
	s.successStatus = status
	s.successData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteList(w http.ResponseWriter, r *http.Request, status, count int, filters, summary, data any) {
	s.listCalled = true
	s.listStatus = status
	s.listCount = count
	s.listFilters = filters
	s.listSummary = summary
	s.listData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	s.writeErrorCalled = true
	s.writeErrorStatus = status
	s.writeErrorCode = code
	s.writeErrorMsg = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// withUID injects a UID into the request context.
func withUID(r *http.Request, uid string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)
	return r.WithContext(ctx)
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

type stubCategoryService struct {
	createResp *models.Category
	createErr  error
	createReq  dto.CreateCategoryRequest

	updateResp *dto.UpdateCategoryResponse
	updateErr  error
	updateID   string
	updateReq  dto.UpdateCategoryRequest

	deleteResp *models.Category
	deleteErr  error
	deleteID   string

	listResp []dto.CategoryResponse
	listErr  error
	listType string
	listUID  string
}

func (s *stubCategoryService) Create(_ context.Context, _ string, req dto.CreateCategoryRequest) (*models.Category, error) {
	s.createReq = req
	return s.createResp, s.createErr
}

func (s *stubCategoryService) Update(_ context.Context, _, categoryID string, req dto.UpdateCategoryRequest) (*dto.UpdateCategoryResponse, error) {
	s.updateID = categoryID
	s.updateReq = req
	return s.updateResp, s.updateErr
}

func (s *stubCategoryService) Delete(_ context.Context, _, categoryID string) (*models.Category, error) {
	s.deleteID = categoryID
	return s.deleteResp, s.deleteErr
}

func (s *stubCategoryService) List(_ context.Context, uid, categoryType string) ([]dto.CategoryResponse, error) {
	s.listUID = uid
	s.listType = categoryType
	return s.listResp, s.listErr
}

func TestCategoryAdd(t *testing.T) {
	svc := &stubCategoryService{createResp: &models.Category{CategoryID: "c1", Name: "Food"}}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	body := `{"name":"Food","type":"expense","color":"DC2626"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/category/add", strings.NewReader(body)), "uid-1")
	h.Add(httptest.NewRecorder(), req)

	if !resp.successCalled || resp.successStatus != http.StatusCreated {
		t.Fatalf("expected 201 success, got %+v", resp)
	}
	if svc.createReq.Name != "Food" || svc.createReq.Type != "expense" {
		t.Fatalf("unexpected request passed to service: %+v", svc.createReq)
	}
}

func TestCategoryAddBadBody(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: &stubCategoryService{}})

	req := withUID(httptest.NewRequest(http.MethodPost, "/category/add", strings.NewReader("{not json")), "uid-1")
	h.Add(httptest.NewRecorder(), req)

	if !resp.writeErrorCalled || resp.writeErrorStatus != http.StatusBadRequest {
		t.Fatalf("expected 400 write, got %+v", resp)
	}
	if resp.writeErrorCode != "invalid_input" {
		t.Fatalf("code = %q, want invalid_input", resp.writeErrorCode)
	}
}

func TestCategoryAddServiceError(t *testing.T) {
	wantErr := errs.NewAlreadyExistsError("category \"Food\" already exists for type expense")
	svc := &stubCategoryService{createErr: wantErr}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	body := `{"name":"Food","type":"expense"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/category/add", strings.NewReader(body)), "uid-1")
	h.Add(httptest.NewRecorder(), req)

	if !resp.handleErrorCalled || resp.handleError != wantErr {
		t.Fatalf("expected the service error to be handled, got %+v", resp)
	}
}

func TestCategoryEdit(t *testing.T) {
	svc := &stubCategoryService{updateResp: &dto.UpdateCategoryResponse{
		Category: models.Category{CategoryID: "c1", Name: "Food", Type: "income"},
		TransactionUpdateInfo: &dto.TransactionUpdateInfo{
			PreviousType:            "expense",
			NewType:                 "income",
			UpdatedTransactionCount: 2,
		},
	}}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	body := `{"type":"income"}`
	req := httptest.NewRequest(http.MethodPut, "/category/edit/c1", strings.NewReader(body))
	req = withChiParam(withUID(req, "uid-1"), "categoryId", "c1")
	h.Edit(httptest.NewRecorder(), req)

	if !resp.successCalled || resp.successStatus != http.StatusOK {
		t.Fatalf("expected 200 success, got %+v", resp)
	}
	if svc.updateID != "c1" {
		t.Fatalf("updateID = %q, want c1", svc.updateID)
	}
	got, ok := resp.successData.(*dto.UpdateCategoryResponse)
	if !ok || got.TransactionUpdateInfo == nil || got.TransactionUpdateInfo.UpdatedTransactionCount != 2 {
		t.Fatalf("unexpected response data: %#v", resp.successData)
	}
}

func TestCategoryDelete(t *testing.T) {
	svc := &stubCategoryService{deleteResp: &models.Category{CategoryID: "c1", Name: "Food"}}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/category/delete/c1", nil)
	req = withChiParam(withUID(req, "uid-1"), "categoryId", "c1")
	h.Delete(httptest.NewRecorder(), req)

	if !resp.successCalled || resp.successStatus != http.StatusOK {
		t.Fatalf("expected 200 success, got %+v", resp)
	}
	if svc.deleteID != "c1" {
		t.Fatalf("deleteID = %q, want c1", svc.deleteID)
	}
}

func TestCategoryDeleteConflict(t *testing.T) {
	cat := &models.Category{CategoryID: "c1", Name: "Food"}
	wantErr := errs.NewCategoryInUseError(cat, []models.Transaction{{TransactionID: "t1"}})
	svc := &stubCategoryService{deleteErr: wantErr}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/category/delete/c1", nil)
	req = withChiParam(withUID(req, "uid-1"), "categoryId", "c1")
	h.Delete(httptest.NewRecorder(), req)

	if !resp.handleErrorCalled || resp.handleError != wantErr {
		t.Fatalf("expected the conflict to be handled, got %+v", resp)
	}
}

func TestCategoryList(t *testing.T) {
	svc := &stubCategoryService{listResp: []dto.CategoryResponse{
		{Category: models.Category{CategoryID: "c1"}, IsDeletable: true},
		{Category: models.Category{CategoryID: "c2"}, IsDeletable: false},
	}}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	req := withUID(httptest.NewRequest(http.MethodGet, "/category/list?type=expense", nil), "uid-1")
	h.List(httptest.NewRecorder(), req)

	if !resp.listCalled || resp.listStatus != http.StatusOK {
		t.Fatalf("expected 200 list, got %+v", resp)
	}
	if resp.listCount != 2 {
		t.Fatalf("count = %d, want 2", resp.listCount)
	}
	if svc.listUID != "uid-1" || svc.listType != "expense" {
		t.Fatalf("service called with uid=%q type=%q", svc.listUID, svc.listType)
	}
}
