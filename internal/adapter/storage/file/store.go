// Package file implements the record store on two flat JSON files in a
// single data directory: accounts.json (object keyed by account number)
// and transactions.json (array in append order).
//
// Every mutation rewrites the complete collection through a temporary
// sibling file followed by an atomic rename, so readers observe either
// the old or the new snapshot, never a partial write. Cost per mutation
// is O(collection size), which is the accepted trade-off for a small
// single-user dataset.
//
// Known limitation: a second process pointing at the same directory sees
// neither the in-memory cache nor the advisory locks. The rename pattern
// still prevents file corruption, but interleaved read-modify-write
// cycles across processes can lose updates.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"local-account-ledger/internal/core/domain"
	"local-account-ledger/pkg/apperror"
)

const (
	accountsFile     = "accounts.json"
	transactionsFile = "transactions.json"
)

// Store owns the two persisted collections and their in-memory caches.
// All access goes through the repositories in this package; they share
// one mutex so a mutation is a single critical section.
type Store struct {
	dir string

	mu             sync.Mutex
	accounts       map[string]domain.Account
	accountsLoaded bool
	txns           []domain.Transaction
	txnsLoaded     bool
}

// Open prepares a store rooted at dir, creating the directory if needed.
// The collection files themselves are created lazily on first access.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.ErrStoreWrite(fmt.Errorf("create data dir: %w", err))
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory the store was opened on.
func (s *Store) Dir() string {
	return s.dir
}

// ensureAccounts loads the account collection into the cache on first
// use. A missing file initializes an empty collection and persists it
// before any read returns; a malformed file propagates as a persistence
// error rather than degrading to an empty store.
// Caller must hold s.mu.
func (s *Store) ensureAccounts(ctx context.Context) error {
	if s.accountsLoaded {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	accounts := make(map[string]domain.Account)
	found, err := readSnapshot(s.accountsPath(), &accounts)
	if err != nil {
		return err
	}
	if !found {
		if err := writeSnapshot(s.accountsPath(), accounts); err != nil {
			return err
		}
	}
	s.accounts = accounts
	s.accountsLoaded = true
	return nil
}

// ensureTxns mirrors ensureAccounts for the transaction log.
// Caller must hold s.mu.
func (s *Store) ensureTxns(ctx context.Context) error {
	if s.txnsLoaded {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	txns := make([]domain.Transaction, 0)
	found, err := readSnapshot(s.txnsPath(), &txns)
	if err != nil {
		return err
	}
	if !found {
		if err := writeSnapshot(s.txnsPath(), txns); err != nil {
			return err
		}
	}
	s.txns = txns
	s.txnsLoaded = true
	return nil
}

// saveAccounts persists the given collection and, on success, commits it
// as the new cache. A write failure leaves the old cache untouched.
// Caller must hold s.mu.
func (s *Store) saveAccounts(accounts map[string]domain.Account) error {
	if err := writeSnapshot(s.accountsPath(), accounts); err != nil {
		return err
	}
	s.accounts = accounts
	return nil
}

// saveTxns mirrors saveAccounts for the transaction log.
// Caller must hold s.mu.
func (s *Store) saveTxns(txns []domain.Transaction) error {
	if err := writeSnapshot(s.txnsPath(), txns); err != nil {
		return err
	}
	s.txns = txns
	return nil
}

func (s *Store) accountsPath() string {
	return filepath.Join(s.dir, accountsFile)
}

func (s *Store) txnsPath() string {
	return filepath.Join(s.dir, transactionsFile)
}

// readSnapshot decodes the whole collection at path into v. It returns
// found=false when the file does not exist; any other failure is a
// corrupt-store error.
func readSnapshot(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperror.ErrStoreCorrupt(fmt.Errorf("read %s: %w", filepath.Base(path), err))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, apperror.ErrStoreCorrupt(fmt.Errorf("decode %s: %w", filepath.Base(path), err))
	}
	return true, nil
}

// writeSnapshot serializes v to a temporary sibling of path and renames
// it over the canonical file. Timestamps round-trip exactly through the
// RFC 3339 encoding of time.Time.
func writeSnapshot(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperror.ErrStoreWrite(fmt.Errorf("encode %s: %w", filepath.Base(path), err))
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperror.ErrStoreWrite(fmt.Errorf("write %s: %w", filepath.Base(tmp), err))
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperror.ErrStoreWrite(fmt.Errorf("rename %s: %w", filepath.Base(tmp), err))
	}
	return nil
}
