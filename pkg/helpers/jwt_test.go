package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.GenerateToken("account-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "account-1", claims.AccountID)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	other := NewJWTManager("different", time.Hour)

	token, _, err := m.GenerateToken("account-1")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)

	token, _, err := m.GenerateToken("account-1")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Garbage(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	_, err := m.ParseToken("not-a-token")
	assert.Error(t, err)
}
