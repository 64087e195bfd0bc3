package ports

import (
	"context"

	"local-account-ledger/internal/core/domain"
)

// HashService handles one-way secret hashing (Argon2id).
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) (bool, error)
}

// AuthService defines credential verification and session management.
type AuthService interface {
	// Login validates formats before any storage access, then verifies the
	// PIN against the stored hash. Failed attempts are never counted.
	Login(ctx context.Context, accountNumber, secret string) (*domain.Account, error)
	// Logout best-effort releases any advisory lock held for the session
	// account, then clears the session unconditionally.
	Logout(ctx context.Context)
	CurrentUser() *domain.Account
	IsAuthenticated() bool
	// ChangeSecret returns false on any failure, with no partial mutation.
	ChangeSecret(ctx context.Context, oldSecret, newSecret string) bool
}

// TransactionService defines the balance-changing operations.
type TransactionService interface {
	Deposit(ctx context.Context, accountNumber string, amount int64) (*TransactionResult, error)
	// Withdraw performs no sufficiency check: a negative resulting balance
	// is a successful outcome.
	Withdraw(ctx context.Context, accountNumber string, amount int64) (*TransactionResult, error)
	// Transfer deterministically fails with a not-implemented error and
	// touches nothing, regardless of input validity.
	Transfer(ctx context.Context, from, to string, amount int64) (*TransactionResult, error)
	GetBalance(ctx context.Context, accountNumber string) (int64, error)
	History(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error)
}

// TransactionResult holds the outcome of a completed balance mutation.
type TransactionResult struct {
	Transaction *domain.Transaction
	NewBalance  int64
}
