package ports

import (
	"context"

	"local-account-ledger/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
// Lookup methods return (nil, nil) when the account is absent.
type AccountRepository interface {
	Get(ctx context.Context, accountNumber string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, accountNumber string, fields AccountUpdate) (*domain.Account, error)
	Delete(ctx context.Context, accountNumber string) (bool, error)
	List(ctx context.Context) ([]domain.Account, error)
}

// AccountUpdate carries the mutable fields of an account. Nil pointers
// leave the field untouched. The account number is immutable and is not
// representable here at all.
type AccountUpdate struct {
	SecretHash *string
	Balance    *int64
}

// TransactionRepository defines persistence operations for the
// append-only transaction log.
type TransactionRepository interface {
	// Append assigns the ID and timestamp, validates the log invariants
	// and persists the full log. The returned record is the committed copy.
	Append(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	// History returns transactions for one account, most recent first.
	// limit <= 0 means no limit.
	History(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error)
}

// LockRegistry is the process-local advisory lock table, keyed by account
// number. Locks are cooperative: nothing in the store enforces them, they
// are never persisted, and a restart clears them all.
type LockRegistry interface {
	// Acquire returns true if the lock was free and is now held.
	Acquire(accountNumber string) bool
	// Release returns true if a lock existed and was released.
	Release(accountNumber string) bool
}
