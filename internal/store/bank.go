package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/finlog/finlog-backend/internal/errs"
	"github.com/finlog/finlog-backend/internal/models"
)

// tokenCipher encrypts Plaid access tokens before they reach Firestore.
type tokenCipher interface {
	KmsEncrypt(ctx context.Context, plaintext string) (string, error)
	KmsDecrypt(ctx context.Context, ciphertext string) (string, error)
}

type bankStore struct {
	client *firestore.Client
	cipher tokenCipher
}

func NewBankStore(client *firestore.Client, cipher tokenCipher) *bankStore {
	return &bankStore{client: client, cipher: cipher}
}

func (s *bankStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("banks")
}

func (s *bankStore) Create(ctx context.Context, uid string, bank *models.Bank) error {
	encrypted, err := s.cipher.KmsEncrypt(ctx, bank.AccessToken)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to encrypt access token", err)
	}

	stored := *bank
	stored.AccessToken = encrypted
	now := time.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	if _, err := s.collection(uid).Doc(stored.BankID).Set(ctx, stored); err != nil {
		return errs.NewDatabaseError("create", "failed to create bank", err)
	}
	return nil
}

// List returns the owner's banks with access tokens decrypted for use.
func (s *bankStore) List(ctx context.Context, uid string) ([]*models.Bank, error) {
	docs, err := s.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list banks", err)
	}
	banks := make([]*models.Bank, 0, len(docs))
	for _, d := range docs {
		var b models.Bank
		if err := d.DataTo(&b); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse bank data", err)
		}
		if b.AccessToken != "" {
			token, err := s.cipher.KmsDecrypt(ctx, b.AccessToken)
			if err != nil {
				return nil, errs.NewDatabaseError("read", "failed to decrypt access token", err)
			}
			b.AccessToken = token
		}
		banks = append(banks, &b)
	}
	return banks, nil
}

func (s *bankStore) Delete(ctx context.Context, uid, bankID string) error {
	_, err := s.collection(uid).Doc(bankID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete bank", err)
	}
	return nil
}
