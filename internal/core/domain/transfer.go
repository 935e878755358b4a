package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer groups the WITHDRAW on the source and the DEPOSIT on the
// destination. It carries no balance of its own.
type Transfer struct {
	TransferID  string          `json:"transferID"`
	FromAccount string          `json:"fromAccno"`
	ToAccount   string          `json:"toAccno"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	InitiatedBy string          `json:"initiatedBy"`
}
