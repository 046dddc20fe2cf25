package services

import (
	"sort"

	"github.com/finlog/finlog-backend/internal/models"
)

const (
	SortByAmount = "amount"
	SortByDate   = "date"

	SortOrderAsc = "asc"
)

// SortTransactions orders txs in place. The sort key defaults to createdAt;
// direction is ascending only on an exact "asc", descending otherwise, so the
// default view is newest first. The sort is stable: equal keys keep their
// relative (creation) order, making repeated queries deterministic.
func SortTransactions(txs []models.Transaction, sortBy, sortOrder string) {
	var less func(a, b *models.Transaction) bool
	switch sortBy {
	case SortByAmount:
		less = func(a, b *models.Transaction) bool { return a.Amount < b.Amount }
	case SortByDate:
		fallthrough
	default:
		less = func(a, b *models.Transaction) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	asc := sortOrder == SortOrderAsc
	sort.SliceStable(txs, func(i, j int) bool {
		if asc {
			return less(&txs[i], &txs[j])
		}
		return less(&txs[j], &txs[i])
	})
}
