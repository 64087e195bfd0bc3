package domain

import "time"

// Account is a single ledger account. The account number is the primary
// key and never changes after creation. Balance is held in minor currency
// units (cents) and may be negative: the ledger permits overdraft.
type Account struct {
	AccountNumber string    `json:"account_number"`
	SecretHash    string    `json:"secret_hash"` // Argon2id encoded, never plaintext
	Balance       int64     `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	accountNumberLen = 10
	secretLen        = 4
)

// ValidAccountNumber reports whether s is a well-formed account number
// (exactly 10 ASCII digits).
func ValidAccountNumber(s string) bool {
	return allDigits(s, accountNumberLen)
}

// ValidSecret reports whether s is a well-formed PIN (exactly 4 ASCII digits).
func ValidSecret(s string) bool {
	return allDigits(s, secretLen)
}

func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
