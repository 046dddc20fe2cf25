package dto

type PlaidEnvironment string

const (
	PlaidSandbox     PlaidEnvironment = "sandbox"
	PlaidDevelopment PlaidEnvironment = "development"
	PlaidProduction  PlaidEnvironment = "production"
)

// ImportedTransaction is one bank row from /transactions/sync, reduced to the
// fields the ledger import needs. Amount keeps Plaid's sign convention
// (positive = money out).
type ImportedTransaction struct {
	ImportID string
	Name     string
	Amount   float64
	Date     string // YYYY-MM-DD
	Pending  bool
	Category string // Plaid personal-finance primary category
}

// PlaidSyncPage is one page from /transactions/sync.
type PlaidSyncPage struct {
	Transactions []ImportedTransaction
	Cursor       string
	HasMore      bool
}

// PlaidSyncResult summarizes one sync run.
type PlaidSyncResult struct {
	BanksSynced          int    `json:"banksSynced"`
	TransactionsImported int    `json:"transactionsImported"`
	Cursor               string `json:"cursor,omitempty"` // latest cursor when syncing one bank
}
