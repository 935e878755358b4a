package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the append-only transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	Accno         string          `db:"accno"`
	Kind          string          `db:"kind"`
	Amount        decimal.Decimal `db:"amount"`
	CreatedAt     time.Time       `db:"created_at"`
	MakerID       *string         `db:"maker_id"`    // Nullable
	CheckerID     *string         `db:"checker_id"`  // Nullable
	TransferID    *string         `db:"transfer_id"` // Nullable
	ReversalOf    *string         `db:"reversal_of"` // Nullable, unique
}

// Transfer is the row shape of the transfers table.
type Transfer struct {
	TransferID  string          `db:"transfer_id"`
	FromAccno   string          `db:"from_accno"`
	ToAccno     string          `db:"to_accno"`
	Amount      decimal.Decimal `db:"amount"`
	CreatedAt   time.Time       `db:"created_at"`
	InitiatedBy string          `db:"initiated_by"`
}
