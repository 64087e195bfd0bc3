package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("ACC_001", "Account not found"),
			expected: "[ACC_001] Account not found",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("STORE_002", "Corrupt file", fmt.Errorf("unexpected end of JSON input")),
			expected: "[STORE_002] Corrupt file: unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New("ACC_001", "test").Unwrap())
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
	}{
		{"InvalidAccountNumber", ErrInvalidAccountNumber(), "VAL_001"},
		{"InvalidSecretFormat", ErrInvalidSecretFormat(), "VAL_002"},
		{"Validation", Validation("amount must be positive"), "VAL_003"},
		{"AccountNotFound", ErrAccountNotFound(), "ACC_001"},
		{"AccountExists", ErrAccountExists(), "ACC_002"},
		{"InvalidSecret", ErrInvalidSecret(), "AUTH_001"},
		{"NotAuthenticated", ErrNotAuthenticated(), "AUTH_002"},
		{"TransferNotImplemented", ErrTransferNotImplemented(), "TXN_003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestStoreErrors(t *testing.T) {
	inner := fmt.Errorf("disk full")

	writeErr := ErrStoreWrite(inner)
	assert.Equal(t, "STORE_001", writeErr.Code)
	assert.True(t, errors.Is(writeErr, inner))

	corruptErr := ErrStoreCorrupt(inner)
	assert.Equal(t, "STORE_002", corruptErr.Code)
	assert.True(t, errors.Is(corruptErr, inner))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "ACC_001", CodeOf(ErrAccountNotFound()))
	assert.Equal(t, "ACC_001", CodeOf(fmt.Errorf("load: %w", ErrAccountNotFound())))
	assert.Equal(t, "", CodeOf(fmt.Errorf("plain error")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsValidation(ErrInvalidAccountNumber()))
	assert.True(t, IsValidation(ErrInvalidSecretFormat()))
	assert.True(t, IsValidation(Validation("too large")))
	assert.False(t, IsValidation(ErrAccountNotFound()))

	assert.True(t, IsNotFound(ErrAccountNotFound()))
	assert.False(t, IsNotFound(ErrAccountExists()))

	assert.True(t, IsPersistence(ErrStoreWrite(fmt.Errorf("x"))))
	assert.True(t, IsPersistence(ErrStoreCorrupt(fmt.Errorf("x"))))
	assert.False(t, IsPersistence(ErrInvalidSecret()))
}
