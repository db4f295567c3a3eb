package session

import (
	"testing"
	"time"

	jwtpkg "github.com/rahmasleam/NexusMenaV2/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndIsActive(t *testing.T) {
	r := NewRegistry()

	token, s, err := r.Issue("u1", "1.2.3.4", "ua", 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtpkg.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, s.ID, claims.SessionID)

	assert.True(t, r.IsActive("u1", s.ID))
	assert.False(t, r.IsActive("u2", s.ID), "session is bound to its user")
	assert.True(t, r.IsActive("u1", ""), "tokens without a session id stay valid")
	assert.False(t, r.IsActive("u1", "nope"))
}

func TestExpiredSessionIsInactive(t *testing.T) {
	r := NewRegistry()
	_, s, err := r.Issue("u1", "", "", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.False(t, r.IsActive("u1", s.ID))
	assert.Empty(t, r.ListActive("u1"))
}

func TestListActiveOrdering(t *testing.T) {
	r := NewRegistry()
	_, first, err := r.Issue("u1", "", "", 0)
	require.NoError(t, err)
	_, second, err := r.Issue("u1", "", "", 0)
	require.NoError(t, err)

	r.Touch("u1", first.ID)
	_ = second

	list := r.ListActive("u1")
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID, "most recently seen first")
}

func TestRevoke(t *testing.T) {
	r := NewRegistry()
	_, s, err := r.Issue("u1", "", "", 0)
	require.NoError(t, err)

	assert.ErrorIs(t, r.Revoke("other", s.ID), ErrNotFound)
	require.NoError(t, r.Revoke("u1", s.ID))
	assert.ErrorIs(t, r.Revoke("u1", s.ID), ErrNotFound)
}

func TestRevokeAllExcept(t *testing.T) {
	r := NewRegistry()
	_, keep, err := r.Issue("u1", "", "", 0)
	require.NoError(t, err)
	_, _, err = r.Issue("u1", "", "", 0)
	require.NoError(t, err)
	_, other, err := r.Issue("u2", "", "", 0)
	require.NoError(t, err)

	r.RevokeAllExcept("u1", keep.ID)

	list := r.ListActive("u1")
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
	assert.True(t, r.IsActive("u2", other.ID), "other users untouched")
}
