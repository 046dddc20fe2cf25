package store

import (
	"errors"
	"os"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/pkg/helpers"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(helpers.TestCtx(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCategoryStoreWithEmulator(t *testing.T) {
	ctx := helpers.TestCtx()
	store := NewCategoryStore(emulatorClient(t))
	uid := "cat-store-user"

	gift := &models.Category{CategoryID: "c1", Name: "Gift", Color: "9333EA", Type: models.TypeIncome}
	if err := store.Create(ctx, uid, gift); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	giftExpense := &models.Category{CategoryID: "c2", Name: "Gift", Color: "DB2777", Type: models.TypeExpense}
	if err := store.Create(ctx, uid, giftExpense); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := store.Get(ctx, uid, "c1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Gift" || got.Type != models.TypeIncome {
		t.Fatalf("Get = %+v, want the income Gift", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set on create")
	}

	// (name, type) resolution distinguishes the two Gifts.
	byNT, err := store.GetByNameType(ctx, uid, "Gift", models.TypeExpense)
	if err != nil {
		t.Fatalf("GetByNameType returned error: %v", err)
	}
	if byNT == nil || byNT.CategoryID != "c2" {
		t.Fatalf("GetByNameType = %+v, want c2", byNT)
	}

	// Absence is (nil, nil), not an error.
	missing, err := store.GetByNameType(ctx, uid, "Nonexistent", models.TypeExpense)
	if err != nil || missing != nil {
		t.Fatalf("GetByNameType(missing) = %+v, %v, want nil, nil", missing, err)
	}

	// Name-only resolution is deterministic: expense sorts before income.
	byName, err := store.GetByName(ctx, uid, "Gift")
	if err != nil {
		t.Fatalf("GetByName returned error: %v", err)
	}
	if byName == nil || byName.Type != models.TypeExpense {
		t.Fatalf("GetByName = %+v, want the expense Gift", byName)
	}

	// The type filter narrows List.
	incomes, err := store.List(ctx, uid, models.TypeIncome)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(incomes) != 1 || incomes[0].CategoryID != "c1" {
		t.Fatalf("List(income) = %+v, want just c1", incomes)
	}

	if err := store.Delete(ctx, uid, "c1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	_, err = store.Get(ctx, uid, "c1")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get after delete = %v, want *errs.NotFoundError", err)
	}
}

func TestCategoryStoreOwnerIsolationWithEmulator(t *testing.T) {
	ctx := helpers.TestCtx()
	store := NewCategoryStore(emulatorClient(t))

	cat := &models.Category{CategoryID: "c-owner", Name: "Food", Type: models.TypeExpense}
	if err := store.Create(ctx, "owner-a", cat); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Another owner's lookup of the same id is a plain not-found.
	_, err := store.Get(ctx, "owner-b", "c-owner")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("cross-owner Get = %v, want *errs.NotFoundError", err)
	}
}
