package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mingle/config"
	"mingle/internal/domain/service"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Token = config.TokenConfig{
		Secret:          "test-secret",
		AccessLifetime:  time.Minute,
		RefreshLifetime: time.Hour,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestJWTServiceRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(&config.Config{})
	require.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	userID := uuid.New()

	pair, err := svc.IssuePair(userID, uuid.New())
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	parsed, err := svc.ParseAccessToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	userID := uuid.New()
	tokenID := uuid.New()

	pair, err := svc.IssuePair(userID, tokenID)
	require.NoError(t, err)

	gotUser, gotToken, err := svc.ParseRefreshToken(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, tokenID, gotToken)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	pair, err := svc.IssuePair(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(pair.Refresh)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)

	_, _, err = svc.ParseRefreshToken(pair.Access)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	other := &config.Config{}
	other.Token = config.TokenConfig{
		Secret:          "another-secret",
		AccessLifetime:  time.Minute,
		RefreshLifetime: time.Hour,
	}
	foreign, err := NewJWTService(other)
	require.NoError(t, err)

	pair, err := foreign.IssuePair(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(pair.Access)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)

	_, _, err = svc.ParseRefreshToken(pair.Refresh)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Token = config.TokenConfig{
		Secret:          "test-secret",
		AccessLifetime:  -time.Minute,
		RefreshLifetime: -time.Minute,
	}
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	pair, err := svc.IssuePair(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(pair.Access)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	_, err := svc.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)

	_, _, err = svc.ParseRefreshToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	hashed, err := hasher.Hash("s3cretpw")
	require.NoError(t, err)
	require.NotEqual(t, "s3cretpw", hashed)

	assert.True(t, hasher.Check("s3cretpw", hashed))
	assert.False(t, hasher.Check("wrongpw", hashed))
}
