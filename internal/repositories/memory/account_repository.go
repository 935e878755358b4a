package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	return s.inUnit(ctx, func(_ context.Context, u *unitOfWork) error {
		s.mu.RLock()
		_, exists := s.accounts[account.AccountNumber]
		s.mu.RUnlock()
		if _, pending := u.newAccounts[account.AccountNumber]; exists || pending {
			return apperrors.NewAppError(apperrors.ErrDuplicate, "account "+account.AccountNumber+" already exists", nil)
		}
		u.newAccounts[account.AccountNumber] = account
		return nil
	})
}

func (s *Store) FindAccountByNumber(ctx context.Context, accno string) (*domain.Account, error) {
	acc, err := s.viewAccount(getUnitOfWork(ctx), accno)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *Store) ListAccountsByCustomer(ctx context.Context, cif string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := []domain.Account{}
	for _, acc := range s.accounts {
		if acc.CIF == cif {
			accounts = append(accounts, acc)
		}
	}
	sortAccounts(accounts)
	return accounts, nil
}

func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	s.mu.RLock()
	accounts := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		accounts = append(accounts, acc)
	}
	s.mu.RUnlock()

	sortAccounts(accounts)
	return page(accounts, limit, offset), nil
}

// ApplyDelta adds delta to the balance as seen by the unit of work. The
// account lock is taken on demand when the caller did not lock it first.
func (s *Store) ApplyDelta(ctx context.Context, accno string, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.inUnit(ctx, func(ctx context.Context, u *unitOfWork) error {
		if err := s.acquire(ctx, u, accno); err != nil {
			return err
		}
		acc, err := s.viewAccount(u, accno)
		if err != nil {
			return err
		}
		next := acc.Balance.Add(delta)
		if next.IsNegative() {
			return apperrors.NewAppError(apperrors.ErrInsufficientFunds,
				"insufficient funds in account "+accno+": balance "+acc.Balance.StringFixed(2), nil)
		}
		if next.GreaterThan(domain.MaxAmount) {
			return apperrors.NewAppError(apperrors.ErrInvalidAmount,
				"balance of account "+accno+" would exceed "+domain.MaxAmount.String(), nil)
		}
		u.balances[accno] = next
		balance = next
		return nil
	})
	return balance, err
}

func sortAccounts(accounts []domain.Account) {
	slices.SortFunc(accounts, func(a, b domain.Account) int {
		return strings.Compare(a.AccountNumber, b.AccountNumber)
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
