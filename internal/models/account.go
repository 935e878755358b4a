package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the row shape of the accounts table.
type Account struct {
	Accno        string          `db:"accno"`
	CIF          string          `db:"cif"`
	AccountType  string          `db:"account_type"`
	Balance      decimal.Decimal `db:"balance"` // CHECK (balance >= 0)
	InterestRate decimal.Decimal `db:"interest_rate"`
	OpenedAt     time.Time       `db:"opened_at"`
	OpenedBy     string          `db:"opened_by"`
}
