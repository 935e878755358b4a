package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/utils/accounting"
	"github.com/SscSPs/bank_backoffice/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type transferService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	accountRepo  portsrepo.AccountRepositoryFacade
	journalRepo  portsrepo.JournalRepositoryFacade
	transferRepo portsrepo.TransferRepositoryFacade
	auditSvc     portssvc.AuditSvc
}

// NewTransferService creates the transfer coordinator.
func NewTransferService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	transferRepo portsrepo.TransferRepositoryFacade,
	auditSvc portssvc.AuditSvc,
	options ...Option,
) portssvc.TransferSvcFacade {
	return &transferService{
		BaseService:  newBaseService(options...),
		txManager:    txManager,
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		transferRepo: transferRepo,
		auditSvc:     auditSvc,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer debits fromAccno and credits toAccno in one unit of work. Both
// accounts are locked in ascending order, so opposite transfers cannot deadlock.
func (s *transferService) Transfer(ctx context.Context, caller domain.Identity, fromAccno, toAccno string, amount decimal.Decimal) (*domain.Transfer, error) {
	logger := s.GetLogger(ctx).With(slog.String("from_accno", fromAccno), slog.String("to_accno", toAccno))

	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if fromAccno == toAccno {
		return nil, apperrors.NewAppError(apperrors.ErrSameAccount, "cannot transfer from account "+fromAccno+" to itself", nil)
	}
	if !caller.IsStaff() {
		source, err := s.accountRepo.FindAccountByNumber(ctx, fromAccno)
		if err != nil {
			return nil, err
		}
		if err := s.AuthorizeAccount(caller, source); err != nil {
			return nil, err
		}
	}

	transfer := domain.Transfer{
		TransferID:  uuid.NewString(),
		FromAccount: fromAccno,
		ToAccount:   toAccno,
		Amount:      amount,
		InitiatedBy: caller.ID,
	}
	maker, _ := makerChecker(caller, nil)

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.LockAccounts(ctx, []string{fromAccno, toAccno}); err != nil {
			return err
		}
		ctx = context.WithoutCancel(ctx)

		ts, err := s.entryTime(ctx, s.journalRepo, fromAccno, toAccno)
		if err != nil {
			return err
		}
		transfer.Timestamp = ts

		if _, err := s.accountRepo.ApplyDelta(ctx, fromAccno, amount.Neg()); err != nil {
			return err
		}
		if _, err := s.accountRepo.ApplyDelta(ctx, toAccno, amount); err != nil {
			return err
		}
		if err := s.transferRepo.SaveTransfer(ctx, transfer); err != nil {
			return err
		}

		legs := []domain.Transaction{
			{AccountNumber: fromAccno, Kind: domain.Withdraw},
			{AccountNumber: toAccno, Kind: domain.Deposit},
		}
		for i := range legs {
			legs[i].Amount = amount
			legs[i].Timestamp = ts
			legs[i].MakerID = maker
			legs[i].TransferID = &transfer.TransferID
		}
		if err := accounting.ValidateTransferLegs(legs); err != nil {
			return apperrors.NewAppError(apperrors.ErrValidation, "unbalanced transfer", err)
		}
		for i := range legs {
			if err := s.journalRepo.AppendTransaction(ctx, &legs[i]); err != nil {
				return err
			}
		}
		return s.auditSvc.Record(ctx, caller.ID, domain.ActionTransferCompleted, domain.TransferRef(transfer.TransferID))
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transfer failed", slog.String("from_accno", fromAccno), slog.String("to_accno", toAccno))
		return nil, err
	}

	logger.Info("Transfer completed", slog.String("transfer_id", transfer.TransferID), slog.String("amount", amount.String()))
	s.publish(ctx, domain.LedgerEvent{
		Type:       domain.EventTransferCompleted,
		EntityRef:  domain.TransferRef(transfer.TransferID),
		Actor:      caller.ID,
		OccurredAt: transfer.Timestamp,
		Data:       transfer,
	})
	return &transfer, nil
}

func (s *transferService) GetTransfer(ctx context.Context, caller domain.Identity, transferID string) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find transfer", slog.String("transfer_id", transferID))
		return nil, err
	}
	if caller.IsStaff() {
		return transfer, nil
	}
	for _, accno := range []string{transfer.FromAccount, transfer.ToAccount} {
		account, err := s.accountRepo.FindAccountByNumber(ctx, accno)
		if err != nil {
			return nil, err
		}
		if s.AuthorizeAccount(caller, account) == nil {
			return transfer, nil
		}
	}
	return nil, apperrors.NewAppError(apperrors.ErrForbidden, "customer may only view transfers of their own accounts", nil)
}

func (s *transferService) ListTransfersByAccount(ctx context.Context, caller domain.Identity, accno string, limit int) ([]domain.Transfer, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accno)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeAccount(caller, account); err != nil {
		return nil, err
	}
	transfers, err := s.transferRepo.ListTransfersByAccount(ctx, accno, pagination.ClampLimit(limit, defaultPageSize, maxPageSize))
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers", slog.String("accno", accno))
		return nil, fmt.Errorf("failed to list transfers for account %s: %w", accno, err)
	}
	return transfers, nil
}
