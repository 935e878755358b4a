package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryRequest is the body of a deposit or withdrawal.
type PostEntryRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	CheckerID *string         `json:"checkerID" binding:"omitempty,max=64"` // Optional second approver for staff postings
}

// TransactionResponse defines the data returned for a journal entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountNumber string                 `json:"accno"`
	Kind          domain.TransactionKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	Timestamp     time.Time              `json:"timestamp"`
	MakerID       *string                `json:"makerID,omitempty"`
	CheckerID     *string                `json:"checkerID,omitempty"`
	TransferID    *string                `json:"transferID,omitempty"`
	ReversalOf    *string                `json:"reversalOf,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountNumber: t.AccountNumber,
		Kind:          t.Kind,
		Amount:        t.Amount,
		Timestamp:     t.Timestamp,
		MakerID:       t.MakerID,
		CheckerID:     t.CheckerID,
		TransferID:    t.TransferID,
		ReversalOf:    t.ReversalOf,
	}
}

// ToListTransactionResponse converts entries to DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}

// ListTransactionsParams defines query parameters for listing an account's entries.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// LimitParams is the query parameter for endpoints that only take a limit.
type LimitParams struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=500"`
}
