package dto

import (
	"github.com/finlog/finlog-backend/internal/models"
)

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Type  string `json:"type"`
}

// UpdateCategoryRequest is a partial update; at least one field must be set.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Type  *string `json:"type,omitempty"`
}

// CategoryResponse annotates a category with its deletability, computed from
// a single set-membership pass over the owner's transactions.
type CategoryResponse struct {
	models.Category
	IsDeletable bool `json:"isDeletable"`
}

// TransactionUpdateInfo reports the outcome of a type-change cascade. The
// count is the number of rows actually written, so callers can detect a
// partially applied cascade.
type TransactionUpdateInfo struct {
	PreviousType            string `json:"previousType"`
	NewType                 string `json:"newType"`
	UpdatedTransactionCount int    `json:"updatedTransactionCount"`
}

type UpdateCategoryResponse struct {
	models.Category
	TransactionUpdateInfo *TransactionUpdateInfo `json:"transactionUpdateInfo,omitempty"`
}

// CategoryInUseData is the conflict payload returned when deletion is blocked
// by referencing transactions.
type CategoryInUseData struct {
	Category         *models.Category     `json:"category"`
	TransactionCount int                  `json:"transactionCount"`
	Transactions     []models.Transaction `json:"transactions"`
}
