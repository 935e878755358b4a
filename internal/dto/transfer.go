package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest moves money between two accounts.
type TransferRequest struct {
	FromAccount string          `json:"fromAccno" binding:"required,accno"`
	ToAccount   string          `json:"toAccno" binding:"required,accno"`
	Amount      decimal.Decimal `json:"amount"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID  string          `json:"transferID"`
	FromAccount string          `json:"fromAccno"`
	ToAccount   string          `json:"toAccno"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	InitiatedBy string          `json:"initiatedBy"`
}

// ToTransferResponse converts a domain.Transfer to its DTO.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:  t.TransferID,
		FromAccount: t.FromAccount,
		ToAccount:   t.ToAccount,
		Amount:      t.Amount,
		Timestamp:   t.Timestamp,
		InitiatedBy: t.InitiatedBy,
	}
}

// ToListTransferResponse converts transfers to DTOs.
func ToListTransferResponse(transfers []domain.Transfer) []TransferResponse {
	res := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		res[i] = ToTransferResponse(&t)
	}
	return res
}
