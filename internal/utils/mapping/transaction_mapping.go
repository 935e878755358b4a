package mapping

import (
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Accno:         d.AccountNumber,
		Kind:          string(d.Kind),
		Amount:        d.Amount,
		CreatedAt:     d.Timestamp,
		MakerID:       d.MakerID,
		CheckerID:     d.CheckerID,
		TransferID:    d.TransferID,
		ReversalOf:    d.ReversalOf,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountNumber: m.Accno,
		Kind:          domain.TransactionKind(m.Kind),
		Amount:        m.Amount,
		Timestamp:     m.CreatedAt.UTC(),
		MakerID:       m.MakerID,
		CheckerID:     m.CheckerID,
		TransferID:    m.TransferID,
		ReversalOf:    m.ReversalOf,
	}
}

// ToModelTransfer converts a domain Transfer to a model Transfer
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:  d.TransferID,
		FromAccno:   d.FromAccount,
		ToAccno:     d.ToAccount,
		Amount:      d.Amount,
		CreatedAt:   d.Timestamp,
		InitiatedBy: d.InitiatedBy,
	}
}

// ToDomainTransfer converts a model Transfer to a domain Transfer
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:  m.TransferID,
		FromAccount: m.FromAccno,
		ToAccount:   m.ToAccno,
		Amount:      m.Amount,
		Timestamp:   m.CreatedAt.UTC(),
		InitiatedBy: m.InitiatedBy,
	}
}
