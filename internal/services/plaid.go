package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finlog/finlog-backend/internal/dto"
	"github.com/finlog/finlog-backend/internal/models"
	"github.com/finlog/finlog-backend/pkg/logger"
)

// importedCategoryName is used when a bank row carries no category.
const importedCategoryName = "Imported"

const importDateLayout = "2006-01-02"

// bankPSStore keeps the service decoupled from the concrete storage.
type bankPSStore interface {
	Create(ctx context.Context, uid string, bank *models.Bank) error
	List(ctx context.Context, uid string) ([]*models.Bank, error)
	Delete(ctx context.Context, uid, bankID string) error
}

// transactionPSStore is the minimal surface required for sync operations.
type transactionPSStore interface {
	UpsertBatch(ctx context.Context, uid string, txs []models.Transaction) error
	GetCursor(ctx context.Context, uid, bankID string) (string, error)
	SetCursor(ctx context.Context, uid, bankID, cursor string) error
}

// categoryPSStore resolves and creates the categories imported rows land in,
// so the creation-time type invariant holds for bank-feed transactions too.
type categoryPSStore interface {
	GetByNameType(ctx context.Context, uid, name, categoryType string) (*models.Category, error)
	Create(ctx context.Context, uid string, c *models.Category) error
}

// plaidClient is the Plaid SDK adapter surface used by this service.
type plaidClient interface {
	CreateLinkToken(ctx context.Context, uid string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (itemID, accessToken string, err error)
	SyncTransactions(ctx context.Context, accessToken string, cursor *string) (dto.PlaidSyncPage, error)
}

type plaidService struct {
	plaid plaidClient
	banks bankPSStore
	txs   transactionPSStore
	cats  categoryPSStore
}

func NewPlaidService(plaid plaidClient, banks bankPSStore, txs transactionPSStore, cats categoryPSStore) *plaidService {
	return &plaidService{plaid: plaid, banks: banks, txs: txs, cats: cats}
}

func (s *plaidService) CreateLinkToken(ctx context.Context, uid string) (string, error) {
	return s.plaid.CreateLinkToken(ctx, uid)
}

func (s *plaidService) ExchangePublicToken(ctx context.Context, uid, publicToken, institutionName string) (string, error) {
	itemID, accessToken, err := s.plaid.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return "", err
	}

	bank := &models.Bank{
		BankID:      itemID,
		Institution: institutionName,
		Status:      "active",
		AccessToken: accessToken,
	}
	if err := s.banks.Create(ctx, uid, bank); err != nil {
		return "", err
	}

	log := logger.FromContext(ctx)
	log.Info("bank linked", "bank_id", itemID, "institution", institutionName)
	return itemID, nil
}

func (s *plaidService) ListBanks(ctx context.Context, uid string) ([]*models.Bank, error) {
	return s.banks.List(ctx, uid)
}

func (s *plaidService) DeleteBank(ctx context.Context, uid, bankID string) error {
	return s.banks.Delete(ctx, uid, bankID)
}

// SyncTransactions pulls bank rows page by page and imports them as ledger
// transactions. Plaid's sign convention (positive = money out) maps to the
// expense/income direction; each row lands in an owner category matching its
// bank-assigned category name, created on first sight.
func (s *plaidService) SyncTransactions(ctx context.Context, uid string, bankID *string) (dto.PlaidSyncResult, error) {
	result := dto.PlaidSyncResult{}
	log := logger.FromContext(ctx)

	banks, err := s.banks.List(ctx, uid)
	if err != nil {
		return result, err
	}

	// categories already resolved this run, keyed name+"/"+type
	seen := make(map[string]*models.Category)

	for _, b := range banks {
		if bankID != nil && *bankID != b.BankID {
			continue
		}
		if b.AccessToken == "" {
			return result, fmt.Errorf("plaid access token missing for bank %s", b.BankID)
		}

		storedCursor, err := s.txs.GetCursor(ctx, uid, b.BankID)
		if err != nil {
			return result, err
		}
		var cursor *string
		if storedCursor != "" {
			cursor = &storedCursor
		}

		latestCursor := storedCursor
		hasMore := true
		for hasMore {
			page, err := s.plaid.SyncTransactions(ctx, b.AccessToken, cursor)
			if err != nil {
				log.Warn("bank sync failed", "bank_id", b.BankID)
				return result, err
			}

			batch := make([]models.Transaction, 0, len(page.Transactions))
			for _, row := range page.Transactions {
				if row.Pending || row.Amount == 0 {
					continue
				}
				t, err := s.convertRow(ctx, uid, b.BankID, row, seen)
				if err != nil {
					return result, err
				}
				batch = append(batch, t)
			}
			if len(batch) > 0 {
				if err := s.txs.UpsertBatch(ctx, uid, batch); err != nil {
					return result, err
				}
				result.TransactionsImported += len(batch)
			}

			latestCursor = page.Cursor
			cursor = &latestCursor
			hasMore = page.HasMore
		}

		if latestCursor != "" {
			if err := s.txs.SetCursor(ctx, uid, b.BankID, latestCursor); err != nil {
				return result, err
			}
		}
		result.BanksSynced++
		if bankID != nil {
			result.Cursor = latestCursor
		}
	}

	log.Info("transaction sync finished",
		"banks_synced", result.BanksSynced,
		"transactions_imported", result.TransactionsImported)
	return result, nil
}

func (s *plaidService) convertRow(ctx context.Context, uid, bankID string, row dto.ImportedTransaction, seen map[string]*models.Category) (models.Transaction, error) {
	categoryType := models.TypeExpense
	amount := row.Amount
	if amount < 0 {
		categoryType = models.TypeIncome
		amount = -amount
	}

	name := row.Category
	if name == "" {
		name = importedCategoryName
	}

	cat, err := s.ensureCategory(ctx, uid, name, categoryType, seen)
	if err != nil {
		return models.Transaction{}, err
	}

	createdAt := time.Now()
	if d, err := time.Parse(importDateLayout, row.Date); err == nil {
		createdAt = d
	}

	return models.Transaction{
		TransactionID: row.ImportID,
		Amount:        amount,
		Description:   row.Name,
		CategoryID:    cat.CategoryID,
		Type:          categoryType,
		BankID:        bankID,
		CreatedAt:     createdAt,
	}, nil
}

func (s *plaidService) ensureCategory(ctx context.Context, uid, name, categoryType string, seen map[string]*models.Category) (*models.Category, error) {
	key := name + "/" + categoryType
	if cat, ok := seen[key]; ok {
		return cat, nil
	}

	cat, err := s.cats.GetByNameType(ctx, uid, name, categoryType)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		cat = &models.Category{
			CategoryID: uuid.New().String(),
			Name:       name,
			Color:      DefaultCategoryColor,
			Type:       categoryType,
		}
		if err := s.cats.Create(ctx, uid, cat); err != nil {
			return nil, err
		}
	}

	seen[key] = cat
	return cat, nil
}
