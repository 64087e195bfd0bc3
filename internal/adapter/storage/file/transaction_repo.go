package file

import (
	"context"
	"time"

	"github.com/google/uuid"

	"local-account-ledger/internal/core/domain"
	"local-account-ledger/pkg/apperror"
)

// TransactionRepo implements ports.TransactionRepository on a Store.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Append assigns an ID and timestamp, validates the log invariants and
// persists the full log. Timestamps are monotonically non-decreasing in
// insertion order even if the wall clock steps backwards.
func (r *TransactionRepo) Append(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureTxns(ctx); err != nil {
		return nil, err
	}

	rec := *txn
	rec.ID = uuid.New()
	rec.Timestamp = time.Now().UTC()
	if n := len(s.txns); n > 0 && rec.Timestamp.Before(s.txns[n-1].Timestamp) {
		rec.Timestamp = s.txns[n-1].Timestamp
	}

	if err := rec.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	next := make([]domain.Transaction, len(s.txns), len(s.txns)+1)
	copy(next, s.txns)
	next = append(next, rec)
	if err := s.saveTxns(next); err != nil {
		return nil, err
	}
	return &rec, nil
}

// History returns the account's transactions most recent first.
// limit <= 0 returns everything.
func (r *TransactionRepo) History(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureTxns(ctx); err != nil {
		return nil, err
	}

	out := make([]domain.Transaction, 0)
	for i := len(s.txns) - 1; i >= 0; i-- {
		if s.txns[i].AccountNumber != accountNumber {
			continue
		}
		out = append(out, s.txns[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
