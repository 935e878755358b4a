package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the product an account was opened as.
type AccountType string

const (
	Savings   AccountType = "SAVINGS"
	Current   AccountType = "CURRENT"
	Recurring AccountType = "RECURRING"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case Savings, Current, Recurring:
		return true
	}
	return false
}

// Account represents a customer account within the core domain.
// Balance is a materialized view of the journal and is only mutated by the ledger.
type Account struct {
	AccountNumber string          `json:"accno"`        // Primary Key, immutable
	CIF           string          `json:"cif"`          // Owning customer
	AccountType   AccountType     `json:"accountType"`  // SAVINGS, CURRENT, RECURRING
	Balance       decimal.Decimal `json:"balance"`      // Never negative
	InterestRate  decimal.Decimal `json:"interestRate"` // Percentage, non-negative
	OpenedAt      time.Time       `json:"openedAt"`
	OpenedBy      string          `json:"openedBy"`
}

// OwnedBy reports whether the account belongs to the given customer.
func (a Account) OwnedBy(cif string) bool {
	return a.CIF == cif
}
