package services

import (
	"context"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/pkg/logger"
)

// transactionIGStore is the minimal surface the guard needs.
type transactionIGStore interface {
	ListByCategory(ctx context.Context, uid, categoryID string) ([]models.Transaction, error)
	CascadeType(ctx context.Context, uid, categoryID, newType string) (int, error)
}

// integrityGuard mediates category mutations that affect existing
// transactions: deletion is blocked while references exist, and a type change
// is propagated to every referencing transaction.
type integrityGuard struct {
	txs transactionIGStore
}

func NewIntegrityGuard(txs transactionIGStore) *integrityGuard {
	return &integrityGuard{txs: txs}
}

// GuardDelete checks the category has no referencing transactions. When it
// does, the returned conflict carries the category snapshot, the count and
// the full referencing list so the caller can decide what to do.
func (g *integrityGuard) GuardDelete(ctx context.Context, uid string, cat *models.Category) error {
	refs, err := g.txs.ListByCategory(ctx, uid, cat.CategoryID)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return errs.NewCategoryInUseError(cat, refs)
	}
	return nil
}

// CascadeTypeChange runs after the category record has already been written
// with its new type. It is not atomic with that write; the returned count is
// the number of transactions actually updated, so callers can detect partial
// application, and the underlying write is idempotent and safe to retry.
func (g *integrityGuard) CascadeTypeChange(ctx context.Context, uid string, cat *models.Category, previousType string) (*dto.TransactionUpdateInfo, error) {
	count, err := g.txs.CascadeType(ctx, uid, cat.CategoryID, cat.Type)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("category type cascade applied",
		"category_id", cat.CategoryID,
		"previous_type", previousType,
		"new_type", cat.Type,
		"updated_transactions", count)

	return &dto.TransactionUpdateInfo{
		PreviousType:            previousType,
		NewType:                 cat.Type,
		UpdatedTransactionCount: count,
	}, nil
}
