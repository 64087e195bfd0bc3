package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionKind represents the kind of balance movement.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	// KindTransfer is accepted as a request kind but never completes;
	// no transfer record is ever written to the log.
	KindTransfer TransactionKind = "transfer"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is one immutable entry in the append-only log. ID and
// Timestamp are assigned by the store at append time.
type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	AccountNumber string            `json:"account_number"`
	Kind          TransactionKind   `json:"kind"`
	Amount        int64             `json:"amount"`
	BalanceBefore int64             `json:"balance_before"`
	BalanceAfter  int64             `json:"balance_after"`
	Timestamp     time.Time         `json:"timestamp"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description,omitempty"`
}

// Validate checks the log invariants: a positive amount, a known kind and
// status, and balance snapshots consistent with the kind. Transfer records
// are rejected outright because no completed transfer can exist.
func (t *Transaction) Validate() error {
	if !ValidAccountNumber(t.AccountNumber) {
		return fmt.Errorf("invalid account number %q", t.AccountNumber)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", t.Amount)
	}
	switch t.Status {
	case StatusPending, StatusCompleted, StatusFailed:
	default:
		return fmt.Errorf("unknown status %q", t.Status)
	}
	switch t.Kind {
	case KindDeposit:
		if t.BalanceAfter != t.BalanceBefore+t.Amount {
			return fmt.Errorf("deposit snapshot mismatch: %d + %d != %d",
				t.BalanceBefore, t.Amount, t.BalanceAfter)
		}
	case KindWithdrawal:
		if t.BalanceAfter != t.BalanceBefore-t.Amount {
			return fmt.Errorf("withdrawal snapshot mismatch: %d - %d != %d",
				t.BalanceBefore, t.Amount, t.BalanceAfter)
		}
	default:
		return fmt.Errorf("kind %q cannot be recorded", t.Kind)
	}
	return nil
}
