package apperror

import (
	"errors"
	"fmt"
)

// AppError is a structured error carrying a stable code the UI layer can
// branch on. Business-rule violations are returned as values, never panics.
type AppError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Err     error  `json:"-"` // Wrapped internal error (not shown to the user)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ---- Validation (VAL) ----

func ErrInvalidAccountNumber() *AppError {
	return New("VAL_001", "Account number must be exactly 10 digits")
}

func ErrInvalidSecretFormat() *AppError {
	return New("VAL_002", "PIN must be exactly 4 digits")
}

// Validation returns a VAL_003 amount/input validation error.
func Validation(message string) *AppError {
	return New("VAL_003", message)
}

// ---- Accounts (ACC) ----

func ErrAccountNotFound() *AppError {
	return New("ACC_001", "Account not found")
}

func ErrAccountExists() *AppError {
	return New("ACC_002", "Account already exists")
}

// ---- Authentication (AUTH) ----

// ErrInvalidSecret reports a PIN mismatch. Attempts are not counted
// anywhere; retrying is always allowed.
func ErrInvalidSecret() *AppError {
	return New("AUTH_001", "Invalid PIN")
}

func ErrNotAuthenticated() *AppError {
	return New("AUTH_002", "No active session")
}

// ---- Transactions (TXN) ----

func ErrTransferNotImplemented() *AppError {
	return New("TXN_003", "Transfers are not implemented")
}

// ---- Persistence (STORE) ----

// ErrStoreWrite wraps a failure to persist a collection snapshot.
func ErrStoreWrite(err error) *AppError {
	return Wrap("STORE_001", "Failed to write ledger data", err)
}

// ErrStoreCorrupt wraps a load failure (unreadable or malformed file).
// Load failures must propagate; an empty collection is never substituted.
func ErrStoreCorrupt(err error) *AppError {
	return Wrap("STORE_002", "Ledger data is unreadable or corrupt", err)
}

// InternalError wraps an unexpected internal failure.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal error", err)
}

// CodeOf returns the AppError code of err, or "" if err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsValidation reports whether err is a format or amount validation error.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case "VAL_001", "VAL_002", "VAL_003":
		return true
	}
	return false
}

// IsNotFound reports whether err is an absent-account error.
func IsNotFound(err error) bool {
	return CodeOf(err) == "ACC_001"
}

// IsPersistence reports whether err originated in the file store.
func IsPersistence(err error) bool {
	switch CodeOf(err) {
	case "STORE_001", "STORE_002":
		return true
	}
	return false
}
