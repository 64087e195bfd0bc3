// Package seed populates the store with the fixed demonstration
// accounts. Seeding is an initialization concern layered on top of the
// account repository, not part of the core contract.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"local-account-ledger/internal/core/domain"
	"local-account-ledger/internal/core/ports"
)

// demoAccount is one well-known demonstration credential set.
type demoAccount struct {
	Number  string
	PIN     string
	Balance int64 // minor units
}

var demoAccounts = []demoAccount{
	{Number: "0000012345", PIN: "1234", Balance: 10000},
	{Number: "0000067890", PIN: "4321", Balance: 500000},
}

// Demo creates the demonstration accounts. It is idempotent: if the
// store already holds any account at all, nothing is created.
func Demo(ctx context.Context, accounts ports.AccountRepository, hashSvc ports.HashService, log zerolog.Logger) error {
	existing, err := accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("accounts", len(existing)).Msg("store already populated, skipping seed")
		return nil
	}

	for _, d := range demoAccounts {
		hash, err := hashSvc.Hash(d.PIN)
		if err != nil {
			return fmt.Errorf("hashing PIN for %s: %w", d.Number, err)
		}
		if _, err := accounts.Create(ctx, &domain.Account{
			AccountNumber: d.Number,
			SecretHash:    hash,
			Balance:       d.Balance,
		}); err != nil {
			return fmt.Errorf("creating %s: %w", d.Number, err)
		}
		log.Info().Str("account", d.Number).Int64("balance", d.Balance).Msg("seeded demo account")
	}
	return nil
}
