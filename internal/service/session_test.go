package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-account-ledger/internal/core/domain"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()

	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Get())

	s.Set(&domain.Account{AccountNumber: "0000012345", Balance: 100})
	assert.True(t, s.Authenticated())
	require.NotNil(t, s.Get())
	assert.Equal(t, "0000012345", s.Get().AccountNumber)

	s.Clear()
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Get())
}

func TestSession_GetReturnsCopy(t *testing.T) {
	s := NewSession()
	s.Set(&domain.Account{AccountNumber: "0000012345", Balance: 100})

	got := s.Get()
	got.Balance = 999999

	assert.Equal(t, int64(100), s.Get().Balance, "mutating the returned copy must not touch the session")
}

func TestSession_IndependentSessions(t *testing.T) {
	// Sessions are explicit values, not globals: two of them never share state.
	a, b := NewSession(), NewSession()

	a.Set(&domain.Account{AccountNumber: "0000000001"})
	assert.True(t, a.Authenticated())
	assert.False(t, b.Authenticated())
}
