package file

import (
	"context"
	"time"

	"local-account-ledger/internal/core/domain"
	"local-account-ledger/internal/core/ports"
	"local-account-ledger/pkg/apperror"
)

// AccountRepo implements ports.AccountRepository on a Store.
type AccountRepo struct {
	store *Store
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(store *Store) *AccountRepo {
	return &AccountRepo{store: store}
}

// Get fetches an account by number. Returns (nil, nil) when absent.
func (r *AccountRepo) Get(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureAccounts(ctx); err != nil {
		return nil, err
	}
	acc, ok := s.accounts[accountNumber]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

// Create inserts a new account. CreatedAt and UpdatedAt are both set to
// the current time regardless of what the caller supplied.
func (r *AccountRepo) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if !domain.ValidAccountNumber(account.AccountNumber) {
		return nil, apperror.ErrInvalidAccountNumber()
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureAccounts(ctx); err != nil {
		return nil, err
	}
	if _, exists := s.accounts[account.AccountNumber]; exists {
		return nil, apperror.ErrAccountExists()
	}

	now := time.Now().UTC()
	acc := *account
	acc.CreatedAt = now
	acc.UpdatedAt = now

	next := cloneAccounts(s.accounts)
	next[acc.AccountNumber] = acc
	if err := s.saveAccounts(next); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Update merges the given fields into an existing account and refreshes
// UpdatedAt. The account number itself is immutable; AccountUpdate cannot
// even express a change to it.
func (r *AccountRepo) Update(ctx context.Context, accountNumber string, fields ports.AccountUpdate) (*domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureAccounts(ctx); err != nil {
		return nil, err
	}
	acc, ok := s.accounts[accountNumber]
	if !ok {
		return nil, apperror.ErrAccountNotFound()
	}

	if fields.SecretHash != nil {
		acc.SecretHash = *fields.SecretHash
	}
	if fields.Balance != nil {
		acc.Balance = *fields.Balance
	}
	acc.UpdatedAt = time.Now().UTC()

	next := cloneAccounts(s.accounts)
	next[accountNumber] = acc
	if err := s.saveAccounts(next); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Delete removes an account and reports whether one existed. Unused by
// the transaction flows; accounts normally live forever.
func (r *AccountRepo) Delete(ctx context.Context, accountNumber string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureAccounts(ctx); err != nil {
		return false, err
	}
	if _, ok := s.accounts[accountNumber]; !ok {
		return false, nil
	}

	next := cloneAccounts(s.accounts)
	delete(next, accountNumber)
	if err := s.saveAccounts(next); err != nil {
		return false, err
	}
	return true, nil
}

// List returns all accounts in implementation-defined (map) order.
func (r *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureAccounts(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc)
	}
	return out, nil
}

func cloneAccounts(in map[string]domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
