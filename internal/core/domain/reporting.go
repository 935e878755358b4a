package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerSummary backs the dashboard tiles.
type LedgerSummary struct {
	AccountCount  int             `json:"accountCount"`
	CustomerCount int             `json:"customerCount"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
}

// AccountDepositTotal is the sum of all DEPOSIT entries on one account.
type AccountDepositTotal struct {
	AccountNumber string          `json:"accno"`
	TotalDeposits decimal.Decimal `json:"totalDeposits"`
}

// BalanceMismatch is an account whose stored balance differs from its journal.
type BalanceMismatch struct {
	AccountNumber  string          `json:"accno"`
	StoredBalance  decimal.Decimal `json:"storedBalance"`
	JournalBalance decimal.Decimal `json:"journalBalance"`
}
