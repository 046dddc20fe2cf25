package services

import (
	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/models"
)

// Summarize reduces a filtered transaction set to its income/expense totals
// and balance. It always runs over the filtered set, so the summary reflects
// exactly what is being displayed.
func Summarize(txs []models.Transaction) dto.Summary {
	var s dto.Summary
	for i := range txs {
		switch txs[i].Type {
		case models.TypeIncome:
			s.TotalIncome += txs[i].Amount
		case models.TypeExpense:
			s.TotalExpense += txs[i].Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}
