package services

import (
	"context"
	"errors"
	"testing"

	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/pkg/helpers"
)

type integrityFakeTxStore struct {
	refs    []models.Transaction
	listErr error

	cascadeCount int
	cascadeErr   error
	cascadeCalls []string
}

func (f *integrityFakeTxStore) ListByCategory(ctx context.Context, uid, categoryID string) ([]models.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.refs, nil
}

func (f *integrityFakeTxStore) CascadeType(ctx context.Context, uid, categoryID, newType string) (int, error) {
	f.cascadeCalls = append(f.cascadeCalls, categoryID+":"+newType)
	return f.cascadeCount, f.cascadeErr
}

func TestGuardDeleteAllowsUnreferencedCategory(t *testing.T) {
	guard := NewIntegrityGuard(&integrityFakeTxStore{})

	cat := &models.Category{CategoryID: "c1", Name: "Food", Type: models.TypeExpense}
	if err := guard.GuardDelete(helpers.TestCtx(), "uid-1", cat); err != nil {
		t.Fatalf("GuardDelete returned error: %v", err)
	}
}

func TestGuardDeleteBlocksReferencedCategory(t *testing.T) {
	refs := []models.Transaction{
		{TransactionID: "t1", CategoryID: "c1"},
		{TransactionID: "t2", CategoryID: "c1"},
		{TransactionID: "t3", CategoryID: "c1"},
	}
	guard := NewIntegrityGuard(&integrityFakeTxStore{refs: refs})

	cat := &models.Category{CategoryID: "c1", Name: "Food", Type: models.TypeExpense}
	err := guard.GuardDelete(helpers.TestCtx(), "uid-1", cat)

	var inUse *errs.CategoryInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("GuardDelete error = %T, want *errs.CategoryInUseError", err)
	}
	if inUse.Category != cat {
		t.Fatalf("conflict category = %+v, want the guarded snapshot", inUse.Category)
	}
	if inUse.Count != 3 {
		t.Fatalf("conflict count = %d, want 3", inUse.Count)
	}
	if len(inUse.Transactions) != 3 {
		t.Fatalf("conflict carries %d transactions, want 3", len(inUse.Transactions))
	}
}

func TestGuardDeletePropagatesStoreError(t *testing.T) {
	storeErr := errs.NewDatabaseError("transactions.ListByCategory", "query failed", errors.New("boom"))
	guard := NewIntegrityGuard(&integrityFakeTxStore{listErr: storeErr})

	cat := &models.Category{CategoryID: "c1"}
	if err := guard.GuardDelete(helpers.TestCtx(), "uid-1", cat); err != storeErr {
		t.Fatalf("GuardDelete error = %v, want %v", err, storeErr)
	}
}

func TestCascadeTypeChangeReportsActualCount(t *testing.T) {
	txs := &integrityFakeTxStore{cascadeCount: 5}
	guard := NewIntegrityGuard(txs)

	cat := &models.Category{CategoryID: "c1", Type: models.TypeIncome}
	info, err := guard.CascadeTypeChange(helpers.TestCtx(), "uid-1", cat, models.TypeExpense)
	if err != nil {
		t.Fatalf("CascadeTypeChange returned error: %v", err)
	}
	if info.PreviousType != models.TypeExpense || info.NewType != models.TypeIncome {
		t.Fatalf("cascade info types = %s -> %s, want expense -> income", info.PreviousType, info.NewType)
	}
	if info.UpdatedTransactionCount != 5 {
		t.Fatalf("UpdatedTransactionCount = %d, want 5", info.UpdatedTransactionCount)
	}
	if len(txs.cascadeCalls) != 1 || txs.cascadeCalls[0] != "c1:income" {
		t.Fatalf("unexpected cascade calls: %#v", txs.cascadeCalls)
	}
}

func TestCascadeTypeChangePropagatesError(t *testing.T) {
	cascadeErr := errs.NewDatabaseError("transactions.CascadeType", "type cascade partially applied", errors.New("boom"))
	guard := NewIntegrityGuard(&integrityFakeTxStore{cascadeErr: cascadeErr})

	cat := &models.Category{CategoryID: "c1", Type: models.TypeIncome}
	if _, err := guard.CascadeTypeChange(helpers.TestCtx(), "uid-1", cat, models.TypeExpense); err != cascadeErr {
		t.Fatalf("CascadeTypeChange error = %v, want %v", err, cascadeErr)
	}
}
