package models

import (
	"time"
)

// Transaction and category direction.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidType reports whether t is one of the two supported directions.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Category lives under users/{uid}/categories, so ownership is carried by the
// document path rather than a field. (name, type) is unique per owner: the
// same name may exist once as income and once as expense.
type Category struct {
	CategoryID string    `firestore:"categoryId" json:"id"`
	Name       string    `firestore:"name" json:"name"`
	Color      string    `firestore:"color" json:"color"` // hex digits, no leading '#'
	Type       string    `firestore:"type" json:"type"`   // "income" | "expense"
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// CategoryRef is the denormalized category shape embedded in transaction
// responses. It is resolved at read time from the stored reference, never
// copied onto the transaction document, so renames are visible on next read.
type CategoryRef struct {
	CategoryID string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
}

func (c *Category) Ref() CategoryRef {
	return CategoryRef{CategoryID: c.CategoryID, Name: c.Name, Color: c.Color}
}
