package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLedger_AddToken(t *testing.T) {
	t.Parallel()

	ledger := NewTokenLedger(uuid.New())

	first := ledger.AddToken()
	second := ledger.AddToken()

	assert.NotEqual(t, uuid.Nil, first)
	assert.NotEqual(t, first, second)
	assert.True(t, ledger.OwnsToken(first))
	assert.True(t, ledger.OwnsToken(second))
}

func TestTokenLedger_RevokeToken(t *testing.T) {
	t.Parallel()

	ledger := NewTokenLedger(uuid.New())
	tokenID := ledger.AddToken()

	ledger.RevokeToken(tokenID)
	assert.False(t, ledger.OwnsToken(tokenID))

	// Revoking an id that was never issued changes nothing.
	survivor := ledger.AddToken()
	ledger.RevokeToken(uuid.New())
	assert.True(t, ledger.OwnsToken(survivor))
	require.Len(t, ledger.TokenIDs, 1)
}

func TestTokenLedger_RevokeAll(t *testing.T) {
	t.Parallel()

	ledger := NewTokenLedger(uuid.New())
	first := ledger.AddToken()
	second := ledger.AddToken()

	ledger.RevokeAll()

	assert.False(t, ledger.OwnsToken(first))
	assert.False(t, ledger.OwnsToken(second))
	assert.Empty(t, ledger.TokenIDs)
}

func TestProfile_LikeHelpers(t *testing.T) {
	t.Parallel()

	profile := &Profile{}
	target := uuid.New()

	assert.False(t, profile.Likes(target))

	profile.AddLike(target)
	assert.True(t, profile.Likes(target))

	profile.RemoveLike(target)
	assert.False(t, profile.Likes(target))

	// Removing an absent id is a no-op.
	profile.AddLike(target)
	profile.RemoveLike(uuid.New())
	assert.True(t, profile.Likes(target))
}
