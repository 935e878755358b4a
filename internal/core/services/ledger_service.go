package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 500
)

// ledgerService posts deposits, withdrawals and reversals. Every posting is a
// single unit of work: lock, balance update, journal entry and audit entry.
type ledgerService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	auditSvc    portssvc.AuditSvc
}

// NewLedgerService creates the ledger engine.
func NewLedgerService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	auditSvc portssvc.AuditSvc,
	options ...Option,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) PostDeposit(ctx context.Context, caller domain.Identity, accno string, amount decimal.Decimal, checkerID *string) (*domain.Transaction, error) {
	return s.post(ctx, caller, accno, domain.Deposit, amount, checkerID)
}

func (s *ledgerService) PostWithdrawal(ctx context.Context, caller domain.Identity, accno string, amount decimal.Decimal, checkerID *string) (*domain.Transaction, error) {
	return s.post(ctx, caller, accno, domain.Withdraw, amount, checkerID)
}

// makerChecker returns the maker and checker recorded on an entry. Customer
// self-service postings carry neither.
func makerChecker(caller domain.Identity, checkerID *string) (*string, *string) {
	if !caller.IsStaff() {
		return nil, nil
	}
	maker := caller.ID
	if checkerID != nil && *checkerID == "" {
		checkerID = nil
	}
	return &maker, checkerID
}

func auditActionFor(kind domain.TransactionKind) (domain.AuditAction, string) {
	if kind == domain.Deposit {
		return domain.ActionDepositPosted, domain.EventDepositPosted
	}
	return domain.ActionWithdrawalPosted, domain.EventWithdrawalPosted
}

func (s *ledgerService) post(ctx context.Context, caller domain.Identity, accno string, kind domain.TransactionKind, amount decimal.Decimal, checkerID *string) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx).With(slog.String("accno", accno), slog.String("kind", string(kind)))

	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if caller.IsStaff() && checkerID != nil {
		if err := domain.ValidateIdentifier("checkerID", *checkerID); err != nil {
			return nil, err
		}
	}
	if !caller.IsStaff() {
		if err := s.authorizeOwner(ctx, caller, accno); err != nil {
			return nil, err
		}
	}

	maker, checker := makerChecker(caller, checkerID)
	action, eventType := auditActionFor(kind)
	var txn domain.Transaction

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.LockAccounts(ctx, []string{accno}); err != nil {
			return err
		}
		// Locks are held: finish the unit even if the client goes away.
		ctx = context.WithoutCancel(ctx)

		ts, err := s.entryTime(ctx, s.journalRepo, accno)
		if err != nil {
			return err
		}
		if _, err := s.accountRepo.ApplyDelta(ctx, accno, kind.Signed(amount)); err != nil {
			return err
		}

		txn = domain.Transaction{
			AccountNumber: accno,
			Kind:          kind,
			Amount:        amount,
			Timestamp:     ts,
			MakerID:       maker,
			CheckerID:     checker,
		}
		if err := s.journalRepo.AppendTransaction(ctx, &txn); err != nil {
			return err
		}
		return s.auditSvc.Record(ctx, caller.ID, action, domain.TransactionRef(txn.TransactionID))
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to post "+string(kind), slog.String("accno", accno))
		return nil, err
	}

	logger.Info("Entry posted", slog.String("transaction_id", txn.TransactionID), slog.String("amount", amount.String()))
	s.publish(ctx, domain.LedgerEvent{
		Type:       eventType,
		EntityRef:  domain.TransactionRef(txn.TransactionID),
		Actor:      caller.ID,
		OccurredAt: txn.Timestamp,
		Data:       txn,
	})
	return &txn, nil
}

// ReverseTransaction posts an entry of the opposite kind for the same amount.
// Transfer legs cannot be reversed one at a time, and an entry is reversed at most once.
func (s *ledgerService) ReverseTransaction(ctx context.Context, caller domain.Identity, transactionID string) (*domain.Transaction, error) {
	if err := s.RequireStaff(caller); err != nil {
		return nil, err
	}

	original, err := s.journalRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find transaction to reverse", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if original.IsTransferLeg() {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "transfer legs cannot be reversed individually", nil)
	}
	if original.ReversalOf != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "a reversal entry cannot itself be reversed", nil)
	}

	maker, _ := makerChecker(caller, nil)
	accno := original.AccountNumber
	kind := original.Kind.Opposite()
	var reversal domain.Transaction

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.LockAccounts(ctx, []string{accno}); err != nil {
			return err
		}
		ctx = context.WithoutCancel(ctx)

		ts, err := s.entryTime(ctx, s.journalRepo, accno)
		if err != nil {
			return err
		}
		if _, err := s.accountRepo.ApplyDelta(ctx, accno, kind.Signed(original.Amount)); err != nil {
			return err
		}

		reversal = domain.Transaction{
			AccountNumber: accno,
			Kind:          kind,
			Amount:        original.Amount,
			Timestamp:     ts,
			MakerID:       maker,
			ReversalOf:    &original.TransactionID,
		}
		if err := s.journalRepo.AppendTransaction(ctx, &reversal); err != nil {
			return err
		}
		return s.auditSvc.Record(ctx, caller.ID, domain.ActionTransactionReversed, domain.TransactionRef(original.TransactionID))
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to reverse transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction reversed",
		slog.String("transaction_id", transactionID),
		slog.String("reversal_id", reversal.TransactionID))
	s.publish(ctx, domain.LedgerEvent{
		Type:       domain.EventTransactionReversed,
		EntityRef:  domain.TransactionRef(original.TransactionID),
		Actor:      caller.ID,
		OccurredAt: reversal.Timestamp,
		Data:       reversal,
	})
	return &reversal, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, caller domain.Identity, transactionID string) (*domain.Transaction, error) {
	txn, err := s.journalRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if !caller.IsStaff() {
		if err := s.authorizeOwner(ctx, caller, txn.AccountNumber); err != nil {
			return nil, err
		}
	}
	return txn, nil
}

func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, caller domain.Identity, accno string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if err := s.authorizeOwner(ctx, caller, accno); err != nil {
		return nil, nil, err
	}
	limit = pagination.ClampLimit(limit, defaultPageSize, maxPageSize)

	txns, next, err := s.journalRepo.ListTransactionsByAccount(ctx, accno, limit, nextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list transactions", slog.String("accno", accno))
		return nil, nil, fmt.Errorf("failed to list transactions for account %s: %w", accno, err)
	}
	return txns, next, nil
}

func (s *ledgerService) ListRecentTransactions(ctx context.Context, caller domain.Identity, limit int) ([]domain.Transaction, error) {
	if err := s.RequireStaff(caller); err != nil {
		return nil, err
	}
	txns, err := s.journalRepo.ListRecentTransactions(ctx, pagination.ClampLimit(limit, defaultPageSize, maxPageSize))
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent transactions")
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return txns, nil
}

// authorizeOwner loads the account and checks the caller may act on it.
func (s *ledgerService) authorizeOwner(ctx context.Context, caller domain.Identity, accno string) error {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accno)
	if err != nil {
		return err
	}
	return s.AuthorizeAccount(caller, account)
}
