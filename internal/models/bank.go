package models

import (
	"time"
)

// Bank is a linked institution used by the bank-feed import. AccessToken is
// KMS-encrypted before storage and never serialized to clients.
type Bank struct {
	BankID      string    `firestore:"bankId" json:"bankId"`
	Institution string    `firestore:"institution" json:"institution"`
	Status      string    `firestore:"status" json:"status"` // "active", "inactive"
	AccessToken string    `firestore:"accessToken" json:"-"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}
