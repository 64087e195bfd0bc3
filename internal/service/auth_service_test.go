package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"local-account-ledger/internal/adapter/storage/file"
	"local-account-ledger/internal/core/domain"
	"local-account-ledger/internal/core/ports"
	"local-account-ledger/internal/core/ports/mocks"
	"local-account-ledger/pkg/apperror"
)

type authTestDeps struct {
	svc      *AuthServiceImpl
	accounts *file.AccountRepo
	locks    *file.LockRegistry
	session  *Session
}

// setupAuthService wires the auth service against a real file store in a
// temp directory, seeded with one account.
func setupAuthService(t *testing.T) *authTestDeps {
	t.Helper()

	store, err := file.Open(t.TempDir())
	require.NoError(t, err)

	accounts := file.NewAccountRepo(store)
	locks := file.NewLockRegistry()
	session := NewSession()
	hashSvc := NewArgon2HashService()

	hash, err := hashSvc.Hash("1234")
	require.NoError(t, err)
	_, err = accounts.Create(context.Background(), &domain.Account{
		AccountNumber: "0000012345",
		SecretHash:    hash,
		Balance:       10000,
	})
	require.NoError(t, err)

	return &authTestDeps{
		svc:      NewAuthService(accounts, hashSvc, locks, session, zerolog.Nop()),
		accounts: accounts,
		locks:    locks,
		session:  session,
	}
}

func TestAuthService_LoginSuccess(t *testing.T) {
	d := setupAuthService(t)

	account, err := d.svc.Login(context.Background(), "0000012345", "1234")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "0000012345", account.AccountNumber)
	assert.True(t, d.svc.IsAuthenticated())
	require.NotNil(t, d.svc.CurrentUser())
	assert.Equal(t, "0000012345", d.svc.CurrentUser().AccountNumber)
}

func TestAuthService_LoginFormatErrorsSkipStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository expectations: a format failure must not cost a lookup.
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := NewAuthService(repo, NewArgon2HashService(), file.NewLockRegistry(), NewSession(), zerolog.Nop())

	_, err := svc.Login(context.Background(), "12345", "1234")
	assert.Equal(t, "VAL_001", apperror.CodeOf(err))

	_, err = svc.Login(context.Background(), "0000012345", "12")
	assert.Equal(t, "VAL_002", apperror.CodeOf(err))

	assert.False(t, svc.IsAuthenticated())
}

func TestAuthService_LoginUnknownAccount(t *testing.T) {
	d := setupAuthService(t)

	_, err := d.svc.Login(context.Background(), "9999999999", "1234")
	require.Error(t, err)
	assert.Equal(t, "ACC_001", apperror.CodeOf(err))
	assert.False(t, d.svc.IsAuthenticated())
}

func TestAuthService_LoginWrongSecret(t *testing.T) {
	d := setupAuthService(t)

	_, err := d.svc.Login(context.Background(), "0000012345", "4321")
	require.Error(t, err)
	assert.Equal(t, "AUTH_001", apperror.CodeOf(err))
	assert.False(t, d.svc.IsAuthenticated())
}

// Failed attempts are never counted: ten wrong PINs must not block the
// eleventh, correct one.
func TestAuthService_UnlimitedRetry(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := d.svc.Login(ctx, "0000012345", "0000")
		require.Error(t, err)
		assert.Equal(t, "AUTH_001", apperror.CodeOf(err))
	}

	account, err := d.svc.Login(ctx, "0000012345", "1234")
	require.NoError(t, err)
	assert.NotNil(t, account)
	assert.True(t, d.svc.IsAuthenticated())
}

func TestAuthService_LoginPropagatesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAccountRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "0000012345").
		Return(nil, apperror.ErrStoreCorrupt(fmt.Errorf("bad file")))

	svc := NewAuthService(repo, NewArgon2HashService(), file.NewLockRegistry(), NewSession(), zerolog.Nop())

	_, err := svc.Login(context.Background(), "0000012345", "1234")
	require.Error(t, err)
	assert.Equal(t, "STORE_002", apperror.CodeOf(err))
}

func TestAuthService_Logout(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	_, err := d.svc.Login(ctx, "0000012345", "1234")
	require.NoError(t, err)
	require.True(t, d.locks.Acquire("0000012345"))

	d.svc.Logout(ctx)

	assert.False(t, d.svc.IsAuthenticated())
	assert.Nil(t, d.svc.CurrentUser())
	assert.True(t, d.locks.Acquire("0000012345"), "logout must have released the advisory lock")
}

func TestAuthService_LogoutWithoutLockStillClears(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	_, err := d.svc.Login(ctx, "0000012345", "1234")
	require.NoError(t, err)

	// No lock held: the failed release is swallowed, the session clears anyway.
	d.svc.Logout(ctx)
	assert.False(t, d.svc.IsAuthenticated())
}

func TestAuthService_LogoutAnonymous(t *testing.T) {
	d := setupAuthService(t)

	d.svc.Logout(context.Background())
	assert.False(t, d.svc.IsAuthenticated())
}

func TestAuthService_ChangeSecret(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	_, err := d.svc.Login(ctx, "0000012345", "1234")
	require.NoError(t, err)

	assert.True(t, d.svc.ChangeSecret(ctx, "1234", "9876"))

	// Old PIN no longer works, new one does.
	d.svc.Logout(ctx)
	_, err = d.svc.Login(ctx, "0000012345", "1234")
	assert.Equal(t, "AUTH_001", apperror.CodeOf(err))

	_, err = d.svc.Login(ctx, "0000012345", "9876")
	assert.NoError(t, err)
}

func TestAuthService_ChangeSecretRefreshesSession(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	_, err := d.svc.Login(ctx, "0000012345", "1234")
	require.NoError(t, err)
	before := d.svc.CurrentUser().SecretHash

	require.True(t, d.svc.ChangeSecret(ctx, "1234", "9876"))
	assert.NotEqual(t, before, d.svc.CurrentUser().SecretHash, "session snapshot must be refreshed")
	assert.True(t, d.svc.IsAuthenticated(), "changing the secret must not end the session")
}

func TestAuthService_ChangeSecretFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		d := setupAuthService(t)
		assert.False(t, d.svc.ChangeSecret(ctx, "1234", "9876"))
	})

	t.Run("wrong old secret", func(t *testing.T) {
		d := setupAuthService(t)
		_, err := d.svc.Login(ctx, "0000012345", "1234")
		require.NoError(t, err)

		assert.False(t, d.svc.ChangeSecret(ctx, "0000", "9876"))

		// No mutation: the old PIN still works.
		d.svc.Logout(ctx)
		_, err = d.svc.Login(ctx, "0000012345", "1234")
		assert.NoError(t, err)
	})

	t.Run("bad new secret format", func(t *testing.T) {
		d := setupAuthService(t)
		_, err := d.svc.Login(ctx, "0000012345", "1234")
		require.NoError(t, err)

		assert.False(t, d.svc.ChangeSecret(ctx, "1234", "98765"))
		assert.False(t, d.svc.ChangeSecret(ctx, "1234", "98a6"))
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hashSvc := NewArgon2HashService()
		hash, err := hashSvc.Hash("1234")
		require.NoError(t, err)

		repo := mocks.NewMockAccountRepository(ctrl)
		repo.EXPECT().Update(gomock.Any(), "0000012345", gomock.Any()).
			Return(nil, apperror.ErrStoreWrite(fmt.Errorf("disk full")))

		session := NewSession()
		session.Set(&domain.Account{AccountNumber: "0000012345", SecretHash: hash})
		svc := NewAuthService(repo, hashSvc, file.NewLockRegistry(), session, zerolog.Nop())

		assert.False(t, svc.ChangeSecret(ctx, "1234", "9876"))
		assert.Equal(t, hash, svc.CurrentUser().SecretHash, "session must keep the old snapshot")
	})
}

// Interface conformance.
var _ ports.AuthService = (*AuthServiceImpl)(nil)
