package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"local-account-ledger/internal/core/domain"
	"local-account-ledger/internal/core/ports"
	"local-account-ledger/pkg/apperror"
)

// MaxAmount is the largest accepted single-operation amount, in minor
// units (1,000,000,000 = 10 million in major units at 100 minor/major).
const MaxAmount int64 = 1_000_000_000

// TransactionServiceImpl implements ports.TransactionService.
type TransactionServiceImpl struct {
	accounts ports.AccountRepository
	txns     ports.TransactionRepository
	log      zerolog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl.
func NewTransactionService(
	accounts ports.AccountRepository,
	txns ports.TransactionRepository,
	log zerolog.Logger,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		accounts: accounts,
		txns:     txns,
		log:      log,
	}
}

// Deposit credits the account and records a completed transaction with
// before/after balance snapshots.
func (s *TransactionServiceImpl) Deposit(ctx context.Context, accountNumber string, amount int64) (*ports.TransactionResult, error) {
	return s.apply(ctx, accountNumber, amount, domain.KindDeposit)
}

// Withdraw debits the account. There is no sufficiency check: the
// resulting balance may go negative and the call still succeeds.
func (s *TransactionServiceImpl) Withdraw(ctx context.Context, accountNumber string, amount int64) (*ports.TransactionResult, error) {
	return s.apply(ctx, accountNumber, amount, domain.KindWithdrawal)
}

// apply runs the single read-modify-write-append sequence shared by
// deposit and withdrawal. Concurrent calls against the same account are
// not serialized here; callers wanting atomicity across the read and the
// write acquire the store's advisory lock first.
func (s *TransactionServiceImpl) apply(ctx context.Context, accountNumber string, amount int64, kind domain.TransactionKind) (*ports.TransactionResult, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	account, err := s.accounts.Get(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	newBalance := account.Balance + amount
	if kind == domain.KindWithdrawal {
		newBalance = account.Balance - amount
	}

	txn, err := s.txns.Append(ctx, &domain.Transaction{
		AccountNumber: accountNumber,
		Kind:          kind,
		Amount:        amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Status:        domain.StatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.Update(ctx, accountNumber, ports.AccountUpdate{Balance: &newBalance}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account", accountNumber).
		Str("kind", string(kind)).
		Int64("amount", amount).
		Int64("balance", newBalance).
		Msg("transaction completed")

	return &ports.TransactionResult{Transaction: txn, NewBalance: newBalance}, nil
}

// Transfer always fails with a not-implemented error. It performs no
// lookups, mutates nothing and records nothing, for any input.
func (s *TransactionServiceImpl) Transfer(ctx context.Context, from, to string, amount int64) (*ports.TransactionResult, error) {
	return nil, apperror.ErrTransferNotImplemented()
}

// GetBalance returns the current balance. An absent account is an error,
// never a silent zero.
func (s *TransactionServiceImpl) GetBalance(ctx context.Context, accountNumber string) (int64, error) {
	account, err := s.accounts.Get(ctx, accountNumber)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, apperror.ErrAccountNotFound()
	}
	return account.Balance, nil
}

// History returns the account's transactions, most recent first.
func (s *TransactionServiceImpl) History(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error) {
	return s.txns.History(ctx, accountNumber, limit)
}

// ValidateAmount applies the amount rules in order: positive first, then
// the fixed maximum. Both 1 and MaxAmount are valid.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return apperror.Validation("amount must be positive")
	}
	if amount > MaxAmount {
		return apperror.Validation("amount exceeds the maximum of " + strconv.FormatInt(MaxAmount, 10) + " minor units")
	}
	return nil
}

// ParseAmount converts user input into a minor-unit amount. Fractional
// input gets its own error: minor units are already the smallest
// subdivision, so "12.50" is a unit mistake rather than a typo.
func ParseAmount(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	amount, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		if _, ferr := strconv.ParseFloat(trimmed, 64); ferr == nil {
			return 0, apperror.Validation("amount must be a whole number of minor units")
		}
		return 0, apperror.Validation("amount must be a number")
	}
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}
