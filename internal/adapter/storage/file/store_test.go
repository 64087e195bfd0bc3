package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-account-ledger/internal/core/domain"
	"local-account-ledger/pkg/apperror"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	return store, dir
}

func testAccount(number string, balance int64) *domain.Account {
	return &domain.Account{
		AccountNumber: number,
		SecretHash:    "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Balance:       balance,
	}
}

func TestStore_BootstrapsEmptyCollections(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	accounts, err := NewAccountRepo(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	history, err := NewTransactionRepo(store).History(ctx, "0000012345", 0)
	require.NoError(t, err)
	assert.Empty(t, history)

	// A first read persists the empty collections before returning.
	assert.FileExists(t, filepath.Join(dir, "accounts.json"))
	assert.FileExists(t, filepath.Join(dir, "transactions.json"))
}

func TestStore_RoundTrip(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()
	repo := NewAccountRepo(store)

	numbers := []string{"0000000001", "0000000002", "0000000003"}
	created := make(map[string]domain.Account, len(numbers))
	for i, n := range numbers {
		acc, err := repo.Create(ctx, testAccount(n, int64(1000*(i+1))))
		require.NoError(t, err)
		created[n] = *acc
	}

	// Reopen from disk: same accounts, identical fields including timestamps.
	reopened, err := Open(dir)
	require.NoError(t, err)
	accounts, err := NewAccountRepo(reopened).List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, len(numbers))

	for _, got := range accounts {
		want, ok := created[got.AccountNumber]
		require.True(t, ok, "unexpected account %s", got.AccountNumber)
		assert.Equal(t, want.SecretHash, got.SecretHash)
		assert.Equal(t, want.Balance, got.Balance)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at must round-trip exactly")
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at must round-trip exactly")
	}
}

func TestStore_TransactionRoundTrip(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()
	repo := NewTransactionRepo(store)

	appended, err := repo.Append(ctx, &domain.Transaction{
		AccountNumber: "0000012345",
		Kind:          domain.KindDeposit,
		Amount:        5000,
		BalanceBefore: 10000,
		BalanceAfter:  15000,
		Status:        domain.StatusCompleted,
		Description:   "test deposit",
	})
	require.NoError(t, err)

	reopened, err := Open(dir)
	require.NoError(t, err)
	history, err := NewTransactionRepo(reopened).History(ctx, "0000012345", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history[0]
	assert.Equal(t, appended.ID, got.ID)
	assert.Equal(t, appended.Amount, got.Amount)
	assert.Equal(t, appended.Description, got.Description)
	assert.True(t, appended.Timestamp.Equal(got.Timestamp), "timestamp must round-trip exactly")
}

func TestStore_CorruptAccountsFilePropagates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "accounts.json"), []byte("{not json"), 0o644))

	store, err := Open(dir)
	require.NoError(t, err)

	// A corrupt file must never be masked as an empty collection.
	_, err = NewAccountRepo(store).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "STORE_002", apperror.CodeOf(err))
}

func TestStore_CorruptTransactionsFilePropagates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.json"), []byte(`{"not":"an array"}`), 0o644))

	store, err := Open(dir)
	require.NoError(t, err)

	_, err = NewTransactionRepo(store).History(context.Background(), "0000012345", 0)
	require.Error(t, err)
	assert.Equal(t, "STORE_002", apperror.CodeOf(err))
}

// Every mutation rewrites the whole collection: the canonical file always
// holds a complete snapshot, with no pagination or partial writes.
func TestStore_WholeCollectionPerWrite(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()
	repo := NewAccountRepo(store)

	for i, n := range []string{"0000000001", "0000000002", "0000000003"} {
		_, err := repo.Create(ctx, testAccount(n, 100))
		require.NoError(t, err)

		raw, err := os.ReadFile(filepath.Join(dir, "accounts.json"))
		require.NoError(t, err)
		var onDisk map[string]domain.Account
		require.NoError(t, json.Unmarshal(raw, &onDisk))
		assert.Len(t, onDisk, i+1)
	}
}

func TestStore_NoTempFileLeftBehind(t *testing.T) {
	store, dir := newTestStore(t)
	_, err := NewAccountRepo(store).Create(context.Background(), testAccount("0000000001", 100))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestStore_WriteFailureKeepsCache(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	store, dir := newTestStore(t)
	ctx := context.Background()
	repo := NewAccountRepo(store)

	_, err := repo.Create(ctx, testAccount("0000000001", 100))
	require.NoError(t, err)

	// Make the directory unwritable so the next snapshot write fails.
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err = repo.Create(ctx, testAccount("0000000002", 200))
	require.Error(t, err)
	assert.Equal(t, "STORE_001", apperror.CodeOf(err))

	require.NoError(t, os.Chmod(dir, 0o755))

	// The failed create must not have leaked into the cache.
	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}
