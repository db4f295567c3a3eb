package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundtrip(t *testing.T) {
	token, err := SignSession("u1", "s1", time.Minute)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
}

func TestParseRejectsTampered(t *testing.T) {
	token, err := Sign("u1", time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[2] = "AAAA" + parts[2][4:]
	_, err = Parse(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := Sign("u1", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token)
	assert.Error(t, err)
}
