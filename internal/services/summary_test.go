package services

import (
	"testing"

	"github.com/finlog/finlog-backend/internal/models"
)

func TestSummarizeMixedTypes(t *testing.T) {
	txs := []models.Transaction{
		{Amount: 1000, Type: models.TypeIncome},
		{Amount: 250, Type: models.TypeExpense},
		{Amount: 150, Type: models.TypeExpense},
	}

	s := Summarize(txs)
	if s.TotalIncome != 1000 {
		t.Fatalf("TotalIncome = %v, want 1000", s.TotalIncome)
	}
	if s.TotalExpense != 400 {
		t.Fatalf("TotalExpense = %v, want 400", s.TotalExpense)
	}
	if s.Balance != 600 {
		t.Fatalf("Balance = %v, want 600", s.Balance)
	}
}

func TestSummarizeExpensesOnlyNegativeBalance(t *testing.T) {
	txs := []models.Transaction{
		{Amount: 150, Type: models.TypeExpense},
		{Amount: 450, Type: models.TypeExpense},
	}

	s := Summarize(txs)
	if s.TotalIncome != 0 {
		t.Fatalf("TotalIncome = %v, want 0", s.TotalIncome)
	}
	if s.TotalExpense != 600 {
		t.Fatalf("TotalExpense = %v, want 600", s.TotalExpense)
	}
	if s.Balance != -600 {
		t.Fatalf("Balance = %v, want -600", s.Balance)
	}
}

func TestSummarizeEmptySet(t *testing.T) {
	s := Summarize(nil)
	if s.TotalIncome != 0 || s.TotalExpense != 0 || s.Balance != 0 {
		t.Fatalf("Summarize(nil) = %+v, want zeroes", s)
	}
}
