package memory

import (
	"context"
	"slices"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Every report is computed under one read lock and so sees a single committed state.

func (s *Store) GetSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make(map[string]struct{})
	total := decimal.Zero
	for _, acc := range s.accounts {
		customers[acc.CIF] = struct{}{}
		total = total.Add(acc.Balance)
	}
	return &domain.LedgerSummary{
		AccountCount:  len(s.accounts),
		CustomerCount: len(customers),
		TotalBalance:  total,
	}, nil
}

func (s *Store) GetAccountsAboveBalance(ctx context.Context, threshold decimal.Decimal) ([]domain.Account, error) {
	s.mu.RLock()
	accounts := []domain.Account{}
	for _, acc := range s.accounts {
		if acc.Balance.GreaterThan(threshold) {
			accounts = append(accounts, acc)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(accounts, func(a, b domain.Account) int {
		if c := b.Balance.Cmp(a.Balance); c != 0 {
			return c
		}
		if a.AccountNumber < b.AccountNumber {
			return -1
		}
		return 1
	})
	return accounts, nil
}

func (s *Store) GetDepositTotals(ctx context.Context) ([]domain.AccountDepositTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]domain.AccountDepositTotal, 0, len(s.accounts))
	for accno := range s.accounts {
		total := decimal.Zero
		for _, idx := range s.byAccount[accno] {
			if t := s.transactions[idx]; t.Kind == domain.Deposit {
				total = total.Add(t.Amount)
			}
		}
		rows = append(rows, domain.AccountDepositTotal{AccountNumber: accno, TotalDeposits: total})
	}
	slices.SortFunc(rows, func(a, b domain.AccountDepositTotal) int {
		if a.AccountNumber < b.AccountNumber {
			return -1
		}
		return 1
	})
	return rows, nil
}

func (s *Store) GetBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mismatches := []domain.BalanceMismatch{}
	for accno, acc := range s.accounts {
		entries := make([]domain.Transaction, 0, len(s.byAccount[accno]))
		for _, idx := range s.byAccount[accno] {
			entries = append(entries, s.transactions[idx])
		}
		journal := accounting.JournalBalance(entries)
		if !journal.Equal(acc.Balance) {
			mismatches = append(mismatches, domain.BalanceMismatch{
				AccountNumber:  accno,
				StoredBalance:  acc.Balance,
				JournalBalance: journal,
			})
		}
	}
	slices.SortFunc(mismatches, func(a, b domain.BalanceMismatch) int {
		if a.AccountNumber < b.AccountNumber {
			return -1
		}
		return 1
	})
	return mismatches, nil
}
