package utils

import (
	"testing"
	"time"

	"taskhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 7*24*time.Hour)
	id := models.Identity{UserID: "u1", Email: "a@b.test", Role: models.RoleTasker}

	token, err := m.Generate(id)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), claims.Remaining().Seconds(), 5)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).Generate(models.Identity{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Generate(models.Identity{UserID: "u1"})
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
