package models

import (
	"time"
)

// Transaction lives under users/{uid}/transactions; ownership is carried by
// the document path. Type must match the referenced category's type at
// creation time; edits are allowed to diverge unless strict matching is on.
type Transaction struct {
	TransactionID string    `firestore:"transactionId" json:"id"`
	Amount        float64   `firestore:"amount" json:"amount"` // strictly positive
	Description   string    `firestore:"description" json:"description,omitempty"`
	CategoryID    string    `firestore:"categoryId" json:"-"`
	Type          string    `firestore:"type" json:"type"` // "income" | "expense"
	BankID        string    `firestore:"bankId,omitempty" json:"bankId,omitempty"` // set on bank-feed imports
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}
