package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/pkg/logger"
)

const maxDescriptionLen = 500

// transactionTSStore keeps the service decoupled from the concrete storage.
type transactionTSStore interface {
	Create(ctx context.Context, uid string, t *models.Transaction) error
	Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
	Update(ctx context.Context, uid string, t *models.Transaction) error
	Delete(ctx context.Context, uid, transactionID string) error
	List(ctx context.Context, uid string) ([]models.Transaction, error)
}

// categoryTSStore is the category surface needed for name resolution and
// read-time denormalization.
type categoryTSStore interface {
	Get(ctx context.Context, uid, categoryID string) (*models.Category, error)
	GetByNameType(ctx context.Context, uid, name, categoryType string) (*models.Category, error)
	GetByName(ctx context.Context, uid, name string) (*models.Category, error)
	List(ctx context.Context, uid, categoryType string) ([]*models.Category, error)
}

type transactionService struct {
	txs  transactionTSStore
	cats categoryTSStore

	// strictEditTypeMatch makes edits re-validate the category/type match the
	// way creation does. Off by default: creation enforces the match, edits
	// historically do not, and that asymmetry is kept for compatibility.
	strictEditTypeMatch bool
}

func NewTransactionService(txs transactionTSStore, cats categoryTSStore, strictEditTypeMatch bool) *transactionService {
	return &transactionService{txs: txs, cats: cats, strictEditTypeMatch: strictEditTypeMatch}
}

// Create validates eagerly, resolves the category name scoped to the owner
// and the requested type, and persists nothing on failure. The category is
// denormalized into the response so callers never need a second lookup.
func (s *transactionService) Create(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !models.ValidType(req.Type) {
		return nil, errs.NewValidationError("type must be either income or expense")
	}
	if req.Amount == nil || *req.Amount <= 0 {
		return nil, errs.NewValidationError("amount must be a positive number")
	}
	if len(req.Description) > maxDescriptionLen {
		return nil, errs.NewValidationError("description must be at most 500 characters")
	}
	name := strings.TrimSpace(req.Category)
	if name == "" {
		return nil, errs.NewValidationError("category is required")
	}

	cat, err := s.cats.GetByNameType(ctx, uid, name, req.Type)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		// Distinguish a type mismatch from a genuinely unknown name.
		other, err := s.cats.GetByNameType(ctx, uid, name, oppositeType(req.Type))
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, errs.NewValidationError("category type does not match transaction type")
		}
		return nil, errs.NewValidationError("category not found")
	}

	t := &models.Transaction{
		TransactionID: uuid.New().String(),
		Amount:        *req.Amount,
		Description:   req.Description,
		CategoryID:    cat.CategoryID,
		Type:          req.Type,
	}
	if err := s.txs.Create(ctx, uid, t); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("transaction created", "transaction_id", t.TransactionID, "type", t.Type)
	return &dto.TransactionResponse{Transaction: *t, Category: cat.Ref()}, nil
}

// Update applies a partial update. A category supplied by name is resolved
// within the owner but, unlike creation, is not restricted to the
// transaction's type unless the strict flag is on.
func (s *transactionService) Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	if req.Amount == nil && req.Description == nil && req.Category == nil && req.Type == nil {
		return nil, errs.NewValidationError("at least one of amount, description, category or type is required")
	}

	t, err := s.txs.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !models.ValidType(*req.Type) {
			return nil, errs.NewValidationError("type must be either income or expense")
		}
		t.Type = *req.Type
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, errs.NewValidationError("amount must be a positive number")
		}
		t.Amount = *req.Amount
	}
	if req.Description != nil {
		if len(*req.Description) > maxDescriptionLen {
			return nil, errs.NewValidationError("description must be at most 500 characters")
		}
		t.Description = *req.Description
	}

	var cat *models.Category
	if req.Category != nil {
		name := strings.TrimSpace(*req.Category)
		if name == "" {
			return nil, errs.NewValidationError("category must not be empty")
		}
		// Prefer the category matching the transaction's type when the name
		// exists for both.
		cat, err = s.cats.GetByNameType(ctx, uid, name, t.Type)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			cat, err = s.cats.GetByName(ctx, uid, name)
			if err != nil {
				return nil, err
			}
		}
		if cat == nil {
			return nil, errs.NewValidationError("category not found")
		}
		t.CategoryID = cat.CategoryID
	}

	if cat == nil {
		cat, err = s.cats.Get(ctx, uid, t.CategoryID)
		if err != nil {
			return nil, err
		}
	}
	if s.strictEditTypeMatch && cat.Type != t.Type {
		return nil, errs.NewValidationError("category type does not match transaction type")
	}

	if err := s.txs.Update(ctx, uid, t); err != nil {
		return nil, err
	}
	return &dto.TransactionResponse{Transaction: *t, Category: cat.Ref()}, nil
}

func (s *transactionService) Delete(ctx context.Context, uid, transactionID string) (*dto.TransactionResponse, error) {
	t, err := s.txs.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.txs.Delete(ctx, uid, transactionID); err != nil {
		return nil, err
	}

	resp := &dto.TransactionResponse{Transaction: *t}
	if cat, err := s.cats.Get(ctx, uid, t.CategoryID); err == nil {
		resp.Category = cat.Ref()
	}
	return resp, nil
}

// Query runs the filter/sort/summarize pipeline over the owner's
// transactions. An empty filtered set is the documented "no data" outcome,
// reported as NotFound rather than an empty success.
func (s *transactionService) Query(ctx context.Context, uid string, filters dto.TransactionFilters) (*dto.TransactionListResult, error) {
	var categoryID *string
	if filters.Category != "" {
		// Unknown filter names are silently dropped, not rejected.
		cat, err := s.cats.GetByName(ctx, uid, filters.Category)
		if err != nil {
			return nil, err
		}
		if cat != nil {
			categoryID = &cat.CategoryID
		}
	}

	all, err := s.txs.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	match := BuildPredicate(filters, categoryID)
	filtered := make([]models.Transaction, 0, len(all))
	for i := range all {
		if match(&all[i]) {
			filtered = append(filtered, all[i])
		}
	}
	if len(filtered) == 0 {
		return nil, errs.NewNotFoundError("no transactions found")
	}

	SortTransactions(filtered, filters.SortBy, filters.SortOrder)
	summary := Summarize(filtered)

	refs, err := s.categoryRefs(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(filtered))
	for _, t := range filtered {
		out = append(out, dto.TransactionResponse{Transaction: t, Category: refs[t.CategoryID]})
	}

	return &dto.TransactionListResult{Transactions: out, Summary: summary}, nil
}

// Expenses is Query with the type filter forced to expense, overriding any
// caller-supplied type.
func (s *transactionService) Expenses(ctx context.Context, uid string, filters dto.TransactionFilters) (*dto.TransactionListResult, error) {
	filters.Type = models.TypeExpense
	return s.Query(ctx, uid, filters)
}

// Incomes is Query with the type filter forced to income.
func (s *transactionService) Incomes(ctx context.Context, uid string, filters dto.TransactionFilters) (*dto.TransactionListResult, error) {
	filters.Type = models.TypeIncome
	return s.Query(ctx, uid, filters)
}

// categoryRefs loads the owner's categories once and indexes them by id for
// read-time denormalization.
func (s *transactionService) categoryRefs(ctx context.Context, uid string) (map[string]models.CategoryRef, error) {
	cats, err := s.cats.List(ctx, uid, "")
	if err != nil {
		return nil, err
	}
	refs := make(map[string]models.CategoryRef, len(cats))
	for _, c := range cats {
		refs[c.CategoryID] = c.Ref()
	}
	return refs, nil
}

func oppositeType(t string) string {
	if t == models.TypeIncome {
		return models.TypeExpense
	}
	return models.TypeIncome
}
