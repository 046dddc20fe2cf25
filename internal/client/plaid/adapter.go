package plaidclient

import (
	"context"

	"github.com/plaid/plaid-go/v24/plaid"

	"github.com/finlog/finlog-backend/internal/dto"
)

type Adapter struct {
	client *plaid.APIClient
}

func NewAdapter(clientID, secret string, env dto.PlaidEnvironment) *Adapter {
	cfg := plaid.NewConfiguration()
	cfg.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	cfg.AddDefaultHeader("PLAID-SECRET", secret)
	cfg.UseEnvironment(toPlaidEnv(env))

	return &Adapter{
		client: plaid.NewAPIClient(cfg),
	}
}

func (a *Adapter) CreateLinkToken(ctx context.Context, uid string) (string, error) {
	req := plaid.NewLinkTokenCreateRequest(
		"Finlog",
		"en",
		[]plaid.CountryCode{plaid.CountryCode("US")},
		plaid.LinkTokenCreateRequestUser{ClientUserId: uid},
	)
	req.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	resp, _, err := a.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*req).Execute()
	if err != nil {
		return "", err
	}
	return resp.GetLinkToken(), nil
}

func (a *Adapter) ExchangePublicToken(ctx context.Context, publicToken string) (itemID, accessToken string, err error) {
	req := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := a.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*req).Execute()
	if err != nil {
		return "", "", err
	}
	return resp.GetItemId(), resp.GetAccessToken(), nil
}

// SyncTransactions fetches one page from /transactions/sync, reduced to the
// fields the ledger import consumes.
func (a *Adapter) SyncTransactions(ctx context.Context, accessToken string, cursor *string) (dto.PlaidSyncPage, error) {
	req := plaid.NewTransactionsSyncRequest(accessToken)
	if cursor != nil {
		req.SetCursor(*cursor)
	}
	req.SetCount(500)
	opts := plaid.NewTransactionsSyncRequestOptions()
	opts.SetIncludePersonalFinanceCategory(true)
	req.SetOptions(*opts)

	var page dto.PlaidSyncPage

	resp, _, err := a.client.PlaidApi.TransactionsSync(ctx).TransactionsSyncRequest(*req).Execute()
	if err != nil {
		return page, err
	}

	rows := make([]dto.ImportedTransaction, 0, len(resp.GetAdded())+len(resp.GetModified()))

	convert := func(plaidTx plaid.Transaction) dto.ImportedTransaction {
		pfc := plaidTx.GetPersonalFinanceCategory()
		return dto.ImportedTransaction{
			ImportID: plaidTx.GetTransactionId(),
			Name:     plaidTx.GetName(),
			Amount:   plaidTx.GetAmount(),
			Date:     plaidTx.GetDate(),
			Pending:  plaidTx.GetPending(),
			Category: pfc.GetPrimary(),
		}
	}

	for _, t := range resp.GetAdded() {
		rows = append(rows, convert(t))
	}
	for _, t := range resp.GetModified() {
		rows = append(rows, convert(t))
	}

	page.Transactions = rows
	page.Cursor = resp.GetNextCursor()
	page.HasMore = resp.GetHasMore()

	return page, nil
}

func toPlaidEnv(env dto.PlaidEnvironment) plaid.Environment {
	switch env {
	case dto.PlaidSandbox:
		return plaid.Sandbox
	case dto.PlaidDevelopment:
		return plaid.Development
	default:
		return plaid.Production
	}
}
