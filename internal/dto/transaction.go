package dto

import (
	"github.com/finlog/finlog-backend/internal/models"
)

type CreateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"` // category name, resolved per owner
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
}

// UpdateTransactionRequest is a partial update; at least one field must be set.
type UpdateTransactionRequest struct {
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Type        *string  `json:"type,omitempty"`
}

// TransactionFilters carries the raw, unparsed filter inputs of a list query.
// Every field is optional; absence means no constraint on that dimension.
// The same struct is echoed back on list responses.
type TransactionFilters struct {
	Category  string `json:"category,omitempty"`
	Type      string `json:"type,omitempty"`
	MinAmount string `json:"minAmount,omitempty"`
	MaxAmount string `json:"maxAmount,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// TransactionResponse embeds the denormalized category so callers never need
// a second lookup.
type TransactionResponse struct {
	models.Transaction
	Category models.CategoryRef `json:"category"`
}

// Summary is computed over the filtered set of one query, never over the
// owner's full history.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

type TransactionListResult struct {
	Transactions []TransactionResponse
	Summary      Summary
}
