package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"local-account-ledger/config"
	fileStorage "local-account-ledger/internal/adapter/storage/file"
	"local-account-ledger/internal/core/ports"
	"local-account-ledger/internal/seed"
	"local-account-ledger/internal/service"
	"local-account-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("data_dir", cfg.Data.Dir).
		Msg("Starting Local Account Ledger")

	ctx := context.Background()

	// Initialize file store
	store, err := fileStorage.Open(cfg.Data.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open data directory")
	}

	// Initialize repositories
	accountRepo := fileStorage.NewAccountRepo(store)
	txnRepo := fileStorage.NewTransactionRepo(store)
	locks := fileStorage.NewLockRegistry()

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	session := service.NewSession()

	// Initialize business services
	authSvc := service.NewAuthService(accountRepo, hashSvc, locks, session, log)
	txnSvc := service.NewTransactionService(accountRepo, txnRepo, log)

	// Seed demonstration accounts
	if cfg.Seed.Demo {
		if err := seed.Demo(ctx, accountRepo, hashSvc, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo accounts")
		}
	}

	// Terminal loop. All logic lives in the services; this layer only
	// prompts and renders.
	run(ctx, authSvc, txnSvc)
}

func run(ctx context.Context, authSvc ports.AuthService, txnSvc ports.TransactionService) {
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Local Account Ledger")
	for {
		if !authSvc.IsAuthenticated() {
			fmt.Print("\n[1] Login  [q] Quit\n> ")
			switch readLine(in) {
			case "1":
				login(ctx, in, authSvc)
			case "q":
				return
			}
			continue
		}

		account := authSvc.CurrentUser().AccountNumber
		fmt.Printf("\nAccount %s\n", account)
		fmt.Print("[1] Balance  [2] Deposit  [3] Withdraw  [4] Transfer  [5] History  [6] Change PIN  [7] Logout\n> ")
		switch readLine(in) {
		case "1":
			balance, err := txnSvc.GetBalance(ctx, account)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("Balance: %d cents\n", balance)
		case "2":
			amount, ok := promptAmount(in)
			if !ok {
				continue
			}
			res, err := txnSvc.Deposit(ctx, account, amount)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("New balance: %d cents\n", res.NewBalance)
		case "3":
			amount, ok := promptAmount(in)
			if !ok {
				continue
			}
			res, err := txnSvc.Withdraw(ctx, account, amount)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("New balance: %d cents\n", res.NewBalance)
		case "4":
			fmt.Print("To account: ")
			to := readLine(in)
			amount, ok := promptAmount(in)
			if !ok {
				continue
			}
			if _, err := txnSvc.Transfer(ctx, account, to, amount); err != nil {
				fmt.Println("error:", err)
			}
		case "5":
			history, err := txnSvc.History(ctx, account, 10)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, txn := range history {
				fmt.Printf("%s  %-10s %8d  %8d -> %8d  %s\n",
					txn.Timestamp.Format("2006-01-02 15:04:05"),
					txn.Kind, txn.Amount, txn.BalanceBefore, txn.BalanceAfter, txn.Status)
			}
		case "6":
			fmt.Print("Current PIN: ")
			oldPIN := readLine(in)
			fmt.Print("New PIN: ")
			newPIN := readLine(in)
			if authSvc.ChangeSecret(ctx, oldPIN, newPIN) {
				fmt.Println("PIN changed")
			} else {
				fmt.Println("PIN change failed")
			}
		case "7":
			authSvc.Logout(ctx)
		}
	}
}

func login(ctx context.Context, in *bufio.Scanner, authSvc ports.AuthService) {
	fmt.Print("Account number: ")
	account := readLine(in)
	fmt.Print("PIN: ")
	pin := readLine(in)

	if _, err := authSvc.Login(ctx, account, pin); err != nil {
		fmt.Println("login failed:", err)
	}
}

func promptAmount(in *bufio.Scanner) (int64, bool) {
	fmt.Print("Amount (cents): ")
	amount, err := service.ParseAmount(readLine(in))
	if err != nil {
		fmt.Println("error:", err)
		return 0, false
	}
	return amount, true
}

func readLine(in *bufio.Scanner) string {
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}
