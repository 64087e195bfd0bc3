package service

import (
	"context"

	"github.com/rs/zerolog"

	"local-account-ledger/internal/core/domain"
	"local-account-ledger/internal/core/ports"
	"local-account-ledger/pkg/apperror"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	accounts ports.AccountRepository
	hashSvc  ports.HashService
	locks    ports.LockRegistry
	session  *Session
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl bound to one session.
func NewAuthService(
	accounts ports.AccountRepository,
	hashSvc ports.HashService,
	locks ports.LockRegistry,
	session *Session,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		accounts: accounts,
		hashSvc:  hashSvc,
		locks:    locks,
		session:  session,
		log:      log,
	}
}

// Login verifies credentials and stores the account in the session.
// Format validation happens before any storage access; a bad format
// never costs a lookup. Unknown account and wrong PIN return distinct
// errors. Failed attempts are not counted or rate-limited: retry is
// unlimited.
func (s *AuthServiceImpl) Login(ctx context.Context, accountNumber, secret string) (*domain.Account, error) {
	if !domain.ValidAccountNumber(accountNumber) {
		return nil, apperror.ErrInvalidAccountNumber()
	}
	if !domain.ValidSecret(secret) {
		return nil, apperror.ErrInvalidSecretFormat()
	}

	account, err := s.accounts.Get(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	match, err := s.hashSvc.Verify(secret, account.SecretHash)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if !match {
		return nil, apperror.ErrInvalidSecret()
	}

	s.session.Set(account)
	s.log.Info().Str("account", accountNumber).Msg("login successful")
	return account, nil
}

// Logout releases any advisory lock held for the session account and
// clears the session unconditionally. The release is fail-open: a
// missing lock is logged and otherwise ignored.
// TODO: decide whether a failed lock release here should surface to the
// caller instead of only being logged.
func (s *AuthServiceImpl) Logout(ctx context.Context) {
	if account := s.session.Get(); account != nil {
		if !s.locks.Release(account.AccountNumber) {
			s.log.Warn().Str("account", account.AccountNumber).Msg("no lock to release at logout")
		}
		s.log.Info().Str("account", account.AccountNumber).Msg("logged out")
	}
	s.session.Clear()
}

// CurrentUser returns the authenticated account, or nil when anonymous.
func (s *AuthServiceImpl) CurrentUser() *domain.Account {
	return s.session.Get()
}

// IsAuthenticated reports whether a user is logged in.
func (s *AuthServiceImpl) IsAuthenticated() bool {
	return s.session.Authenticated()
}

// ChangeSecret replaces the session account's PIN. Every failure path
// returns false with no partial mutation; the session snapshot is
// refreshed only after the store accepted the new hash.
func (s *AuthServiceImpl) ChangeSecret(ctx context.Context, oldSecret, newSecret string) bool {
	account := s.session.Get()
	if account == nil {
		return false
	}

	match, err := s.hashSvc.Verify(oldSecret, account.SecretHash)
	if err != nil || !match {
		return false
	}
	if !domain.ValidSecret(newSecret) {
		return false
	}

	newHash, err := s.hashSvc.Hash(newSecret)
	if err != nil {
		s.log.Error().Err(err).Msg("hashing new secret failed")
		return false
	}

	updated, err := s.accounts.Update(ctx, account.AccountNumber, ports.AccountUpdate{SecretHash: &newHash})
	if err != nil {
		s.log.Error().Err(err).Str("account", account.AccountNumber).Msg("persisting new secret failed")
		return false
	}

	s.session.Set(updated)
	s.log.Info().Str("account", account.AccountNumber).Msg("secret changed")
	return true
}
