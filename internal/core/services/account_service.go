package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	auditSvc    portssvc.AuditSvc
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	auditSvc portssvc.AuditSvc,
	options ...Option,
) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		accountRepo: accountRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// OpenAccount creates a zero-balance account. The balance only ever changes through the ledger.
func (s *accountService) OpenAccount(ctx context.Context, caller domain.Identity, req dto.OpenAccountRequest) (*domain.Account, error) {
	if err := s.RequireStaff(caller); err != nil {
		return nil, err
	}
	if req.AccountNumber == "" || req.CIF == "" {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "account number and CIF are required", nil)
	}
	if !req.AccountType.IsValid() {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, fmt.Sprintf("unknown account type '%s'", req.AccountType), nil)
	}
	if err := domain.ValidateRate(req.InterestRate); err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountNumber: req.AccountNumber,
		CIF:           req.CIF,
		AccountType:   req.AccountType,
		Balance:       decimal.Zero,
		InterestRate:  req.InterestRate,
		OpenedAt:      s.Now(),
		OpenedBy:      caller.ID,
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			return err
		}
		return s.auditSvc.Record(ctx, caller.ID, domain.ActionAccountOpened, domain.AccountRef(account.AccountNumber))
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to open account", slog.String("accno", account.AccountNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Account opened", slog.String("accno", account.AccountNumber), slog.String("cif", account.CIF))
	s.publish(ctx, domain.LedgerEvent{
		Type:       domain.EventAccountOpened,
		EntityRef:  domain.AccountRef(account.AccountNumber),
		Actor:      caller.ID,
		OccurredAt: account.OpenedAt,
		Data:       account,
	})
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, caller domain.Identity, accno string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accno)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find account", slog.String("accno", accno))
		return nil, err
	}
	if err := s.AuthorizeAccount(caller, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccountsByCustomer(ctx context.Context, caller domain.Identity, cif string) ([]domain.Account, error) {
	if err := s.AuthorizeCustomer(caller, cif); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccountsByCustomer(ctx, cif)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by customer", slog.String("cif", cif))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// ListAllAccounts retrieves a paginated list of every account.
func (s *accountService) ListAllAccounts(ctx context.Context, caller domain.Identity, limit int, offset int) ([]domain.Account, error) {
	if err := s.RequireStaff(caller); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}
