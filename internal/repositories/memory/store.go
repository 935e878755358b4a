// Package memory is an in-process implementation of the repository ports.
// Writes made inside a unit of work are buffered and become visible to other
// callers all at once on commit; balance mutations are serialized by
// per-account locks taken in ascending account-number order.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store holds the committed ledger state.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	transactions []domain.Transaction
	txIndex      map[string]int
	byAccount    map[string][]int
	latest       map[string]time.Time
	reversed     map[string]string // original transaction id -> reversing id
	transfers    []domain.Transfer
	transferIdx  map[string]int
	loans        map[string]domain.Loan
	audit        []domain.AuditEntry

	locksMu     sync.Mutex
	locks       map[string]*accountLock
	lockTimeout time.Duration
}

// accountLock is a one-slot semaphore shared by every unit of work holding or
// waiting for the account. It is dropped once refs reaches zero.
type accountLock struct {
	sem  chan struct{}
	refs int
}

// NewStore creates an empty store. lockTimeout bounds every account lock wait; zero waits
// until the caller's context is done.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		accounts:    make(map[string]domain.Account),
		txIndex:     make(map[string]int),
		byAccount:   make(map[string][]int),
		latest:      make(map[string]time.Time),
		reversed:    make(map[string]string),
		transferIdx: make(map[string]int),
		loans:       make(map[string]domain.Loan),
		locks:       make(map[string]*accountLock),
		lockTimeout: lockTimeout,
	}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     store,
		AccountRepo:   store,
		JournalRepo:   store,
		TransferRepo:  store,
		LoanRepo:      store,
		AuditRepo:     store,
		ReportingRepo: store,
	}
}

var (
	_ portsrepo.TransactionManager       = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade  = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade  = (*Store)(nil)
	_ portsrepo.TransferRepositoryFacade = (*Store)(nil)
	_ portsrepo.LoanRepositoryFacade     = (*Store)(nil)
	_ portsrepo.AuditRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ReportingRepository      = (*Store)(nil)
)

type uowKey struct{}

// unitOfWork buffers the writes of one WithTransaction call. It is owned by a
// single goroutine.
type unitOfWork struct {
	held        map[string]struct{}
	balances    map[string]decimal.Decimal
	newAccounts map[string]domain.Account
	txns        []domain.Transaction
	transfers   []domain.Transfer
	newLoans    map[string]domain.Loan
	decisions   map[string]domain.Loan
	audit       []domain.AuditEntry
}

func newUnitOfWork() *unitOfWork {
	return &unitOfWork{
		held:        make(map[string]struct{}),
		balances:    make(map[string]decimal.Decimal),
		newAccounts: make(map[string]domain.Account),
		newLoans:    make(map[string]domain.Loan),
		decisions:   make(map[string]domain.Loan),
	}
}

func getUnitOfWork(ctx context.Context) *unitOfWork {
	u, _ := ctx.Value(uowKey{}).(*unitOfWork)
	return u
}

// WithTransaction runs fn in a unit of work and commits its buffered writes atomically.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if getUnitOfWork(ctx) != nil {
		return fn(ctx)
	}

	u := newUnitOfWork()
	defer s.releaseAll(u)

	if err := fn(context.WithValue(ctx, uowKey{}, u)); err != nil {
		return err
	}
	return s.commit(u)
}

// inUnit runs fn with the caller's unit of work, opening one if needed.
func (s *Store) inUnit(ctx context.Context, fn func(ctx context.Context, u *unitOfWork) error) error {
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		return fn(ctx, getUnitOfWork(ctx))
	})
}

// commit validates the buffered writes against the committed state and applies
// them under the store lock. Either all writes apply or none do.
func (s *Store) commit(u *unitOfWork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for accno := range u.newAccounts {
		if _, exists := s.accounts[accno]; exists {
			return apperrors.NewAppError(apperrors.ErrDuplicate, fmt.Sprintf("account %s already exists", accno), nil)
		}
	}
	for _, t := range u.txns {
		if !s.accountExistsLocked(u, t.AccountNumber) {
			return apperrors.NewNotFoundError("account " + t.AccountNumber)
		}
		if t.ReversalOf != nil {
			if _, done := s.reversed[*t.ReversalOf]; done {
				return apperrors.NewAppError(apperrors.ErrDuplicate, "transaction "+*t.ReversalOf+" is already reversed", nil)
			}
		}
	}
	for id, l := range u.newLoans {
		if _, exists := s.loans[id]; exists {
			return apperrors.NewAppError(apperrors.ErrDuplicate, "loan "+id+" already exists", nil)
		}
		if !s.accountExistsLocked(u, l.AccountNumber) {
			return apperrors.NewNotFoundError("account " + l.AccountNumber)
		}
	}
	for id := range u.decisions {
		stored, ok := s.loans[id]
		if !ok {
			if _, pending := u.newLoans[id]; !pending {
				return apperrors.NewNotFoundError("loan " + id)
			}
			continue
		}
		if stored.Status != domain.LoanPending {
			return apperrors.NewAppError(apperrors.ErrAlreadyDecided, "loan "+id+" is "+string(stored.Status), nil)
		}
	}

	for accno, acc := range u.newAccounts {
		s.accounts[accno] = acc
	}
	for accno, balance := range u.balances {
		acc := s.accounts[accno]
		acc.Balance = balance
		s.accounts[accno] = acc
	}
	for _, t := range u.txns {
		s.transactions = append(s.transactions, t)
		idx := len(s.transactions) - 1
		s.txIndex[t.TransactionID] = idx
		s.byAccount[t.AccountNumber] = append(s.byAccount[t.AccountNumber], idx)
		if t.Timestamp.After(s.latest[t.AccountNumber]) {
			s.latest[t.AccountNumber] = t.Timestamp
		}
		if t.ReversalOf != nil {
			s.reversed[*t.ReversalOf] = t.TransactionID
		}
	}
	for _, tr := range u.transfers {
		s.transfers = append(s.transfers, tr)
		s.transferIdx[tr.TransferID] = len(s.transfers) - 1
	}
	for id, l := range u.newLoans {
		s.loans[id] = l
	}
	for id, l := range u.decisions {
		s.loans[id] = l
	}
	s.audit = append(s.audit, u.audit...)
	return nil
}

// accountExistsLocked reports whether accno is committed or opened in u. Caller holds s.mu.
func (s *Store) accountExistsLocked(u *unitOfWork, accno string) bool {
	if _, ok := s.accounts[accno]; ok {
		return true
	}
	_, ok := u.newAccounts[accno]
	return ok
}

// retain returns the account's semaphore and counts the caller as a user of it.
func (s *Store) retain(accno string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[accno]
	if !ok {
		l = &accountLock{sem: make(chan struct{}, 1)}
		s.locks[accno] = l
	}
	l.refs++
	return l.sem
}

// unref drops one user of the account lock. Caller holds s.locksMu.
func (s *Store) unref(accno string) {
	l, ok := s.locks[accno]
	if !ok {
		return
	}
	l.refs--
	if l.refs <= 0 {
		delete(s.locks, accno)
	}
}

// acquire takes the account lock for u, waiting at most until ctx is done or
// the store's lock timeout elapses.
func (s *Store) acquire(ctx context.Context, u *unitOfWork, accno string) error {
	if _, ok := u.held[accno]; ok {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return apperrors.NewAppError(apperrors.ErrBusy, "request deadline reached before locking account "+accno, err)
	}

	sem := s.retain(accno)
	select {
	case sem <- struct{}{}:
		u.held[accno] = struct{}{}
		return nil
	default:
	}

	var timeout <-chan time.Time
	if s.lockTimeout > 0 {
		timer := time.NewTimer(s.lockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case sem <- struct{}{}:
		u.held[accno] = struct{}{}
		return nil
	case <-ctx.Done():
		s.giveUp(accno)
		return apperrors.NewAppError(apperrors.ErrBusy, "request deadline reached while waiting for account "+accno, ctx.Err())
	case <-timeout:
		s.giveUp(accno)
		return apperrors.NewAppError(apperrors.ErrBusy, fmt.Sprintf("account %s is locked by another operation", accno), nil)
	}
}

// giveUp forgets a waiter that never obtained the lock.
func (s *Store) giveUp(accno string) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	s.unref(accno)
}

func (s *Store) releaseAll(u *unitOfWork) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	for accno := range u.held {
		<-s.locks[accno].sem
		s.unref(accno)
	}
	clear(u.held)
}

// LockAccounts acquires the accounts in ascending order and returns their current state.
func (s *Store) LockAccounts(ctx context.Context, accnos []string) (map[string]domain.Account, error) {
	u := getUnitOfWork(ctx)
	if u == nil {
		return nil, fmt.Errorf("LockAccounts requires an open unit of work")
	}

	ordered := slices.Clone(accnos)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	locked := make(map[string]domain.Account, len(ordered))
	for _, accno := range ordered {
		if err := s.acquire(ctx, u, accno); err != nil {
			return nil, err
		}
		acc, err := s.viewAccount(u, accno)
		if err != nil {
			return nil, err
		}
		locked[accno] = acc
	}
	return locked, nil
}

// viewAccount returns the account as the unit of work sees it.
func (s *Store) viewAccount(u *unitOfWork, accno string) (domain.Account, error) {
	s.mu.RLock()
	acc, ok := s.accounts[accno]
	s.mu.RUnlock()

	if u != nil {
		if pending, isNew := u.newAccounts[accno]; isNew && !ok {
			acc, ok = pending, true
		}
		if balance, changed := u.balances[accno]; changed {
			acc.Balance = balance
		}
	}
	if !ok {
		return domain.Account{}, apperrors.NewNotFoundError("account " + accno)
	}
	return acc, nil
}
