package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"mingle/internal/domain/entity"
	domainerrors "mingle/internal/domain/errors"
	"mingle/internal/domain/repository"
	"mingle/internal/domain/service"
	"mingle/internal/mocks"
	"mingle/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	userRepo     *mocks.UserRepository
	ledgerRepo   *mocks.TokenLedgerRepository
	hasher       *mocks.PasswordHasher
	tokenService *mocks.TokenService
	service      usecase.AuthUsecase
}

func newAuthServiceFixtures() *authServiceFixtures {
	userRepo := &mocks.UserRepository{}
	ledgerRepo := &mocks.TokenLedgerRepository{}
	hasher := &mocks.PasswordHasher{}
	tokenService := &mocks.TokenService{}
	txManager := &mocks.TransactionManager{
		Factory: &mocks.RepositoryFactory{User: userRepo, Ledger: ledgerRepo},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		LedgerRepo:   ledgerRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return &authServiceFixtures{
		userRepo:     userRepo,
		ledgerRepo:   ledgerRepo,
		hasher:       hasher,
		tokenService: tokenService,
		service:      svc,
	}
}

func TestAuthService_IssueTokenPair_Success(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Username: "somebody42", PasswordHash: "hash"}
	pair := &entity.TokenPair{Access: "access", Refresh: "refresh"}

	f.userRepo.On("FindByUsername", ctx, "somebody42").Return(user, nil)
	f.hasher.On("Check", "hunter2pw", "hash").Return(true)
	f.ledgerRepo.On("FindByUser", ctx, userID).Return(nil, repository.ErrLedgerNotFound)
	f.ledgerRepo.On("Save", ctx, mock.AnythingOfType("*entity.TokenLedger")).Return(nil)
	f.tokenService.On("IssuePair", userID, mock.AnythingOfType("uuid.UUID")).Return(pair, nil)

	out, err := f.service.IssueTokenPair(ctx, usecase.CredentialsInput{Username: "somebody42", Password: "hunter2pw"})

	require.NoError(t, err)
	assert.Equal(t, pair, out.Pair)

	// The fresh ledger must carry exactly the id the refresh token was bound to.
	saved := f.ledgerRepo.Calls[1].Arguments.Get(1).(*entity.TokenLedger)
	require.Len(t, saved.TokenIDs, 1)
	issuedID := f.tokenService.Calls[0].Arguments.Get(1).(uuid.UUID)
	assert.Equal(t, issuedID, saved.TokenIDs[0])
}

func TestAuthService_IssueTokenPair_UnknownUsername(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()

	f.userRepo.On("FindByUsername", ctx, "nosuchuser").Return(nil, repository.ErrUserNotFound)

	_, err := f.service.IssueTokenPair(ctx, usecase.CredentialsInput{Username: "nosuchuser", Password: "whatever1"})

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "User with such username does not exist.", verr.Fields["username"])
}

func TestAuthService_IssueTokenPair_WrongPassword(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Username: "somebody42", PasswordHash: "hash"}

	f.userRepo.On("FindByUsername", ctx, "somebody42").Return(user, nil)
	f.hasher.On("Check", "wrongpass", "hash").Return(false)

	_, err := f.service.IssueTokenPair(ctx, usecase.CredentialsInput{Username: "somebody42", Password: "wrongpass"})

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Incorrect password provided.", verr.Fields["password"])
}

func TestAuthService_RefreshTokenPair_RotatesLedger(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	userID := uuid.New()
	oldTokenID := uuid.New()
	ledger := &entity.TokenLedger{UserID: userID, TokenIDs: []uuid.UUID{oldTokenID}}
	pair := &entity.TokenPair{Access: "access2", Refresh: "refresh2"}

	f.tokenService.On("ParseRefreshToken", "old-refresh").Return(userID, oldTokenID, nil)
	f.ledgerRepo.On("FindByUser", ctx, userID).Return(ledger, nil)
	f.ledgerRepo.On("Save", ctx, ledger).Return(nil)
	f.tokenService.On("IssuePair", userID, mock.AnythingOfType("uuid.UUID")).Return(pair, nil)

	out, err := f.service.RefreshTokenPair(ctx, "old-refresh")

	require.NoError(t, err)
	assert.Equal(t, pair, out.Pair)

	// Old id rotated out, exactly one new id in, and the new pair bound to it.
	require.Len(t, ledger.TokenIDs, 1)
	assert.NotEqual(t, oldTokenID, ledger.TokenIDs[0])
	issuedID := f.tokenService.Calls[1].Arguments.Get(1).(uuid.UUID)
	assert.Equal(t, ledger.TokenIDs[0], issuedID)
}

func TestAuthService_RefreshTokenPair_ReplayedTokenRejected(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	userID := uuid.New()
	rotatedOutID := uuid.New()
	ledger := &entity.TokenLedger{UserID: userID, TokenIDs: []uuid.UUID{uuid.New()}}

	// The presented token verifies fine but its id already left the ledger.
	f.tokenService.On("ParseRefreshToken", "replayed").Return(userID, rotatedOutID, nil)
	f.ledgerRepo.On("FindByUser", ctx, userID).Return(ledger, nil)

	_, err := f.service.RefreshTokenPair(ctx, "replayed")

	var uerr *domainerrors.Unauthorized
	require.ErrorAs(t, err, &uerr)
	assert.True(t, uerr.Refresh)
	f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_RefreshTokenPair_MalformedToken(t *testing.T) {
	f := newAuthServiceFixtures()

	f.tokenService.On("ParseRefreshToken", "garbage").Return(uuid.Nil, uuid.Nil, service.ErrTokenInvalid)

	_, err := f.service.RefreshTokenPair(context.Background(), "garbage")

	var uerr *domainerrors.Unauthorized
	require.ErrorAs(t, err, &uerr)
	assert.True(t, uerr.Refresh)
}

func TestAuthService_RefreshTokenPair_NoLedger(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	userID := uuid.New()

	f.tokenService.On("ParseRefreshToken", "orphan").Return(userID, uuid.New(), nil)
	f.ledgerRepo.On("FindByUser", ctx, userID).Return(nil, repository.ErrLedgerNotFound)

	_, err := f.service.RefreshTokenPair(ctx, "orphan")

	var uerr *domainerrors.Unauthorized
	require.ErrorAs(t, err, &uerr)
	assert.True(t, uerr.Refresh)
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	userID := uuid.New()

	f.tokenService.On("ParseAccessToken", "access").Return(userID, nil)
	f.userRepo.On("ExistsWithID", ctx, userID).Return(true, nil)

	got, err := f.service.Authenticate(ctx, "access")

	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	userID := uuid.New()

	f.tokenService.On("ParseAccessToken", "access").Return(userID, nil)
	f.userRepo.On("ExistsWithID", ctx, userID).Return(false, nil)

	_, err := f.service.Authenticate(ctx, "access")

	var uerr *domainerrors.Unauthorized
	require.ErrorAs(t, err, &uerr)
	assert.True(t, uerr.Access)
}

func TestAuthService_Authenticate_BadToken(t *testing.T) {
	f := newAuthServiceFixtures()

	f.tokenService.On("ParseAccessToken", "garbage").Return(uuid.Nil, service.ErrTokenInvalid)

	_, err := f.service.Authenticate(context.Background(), "garbage")

	var uerr *domainerrors.Unauthorized
	require.ErrorAs(t, err, &uerr)
	assert.True(t, uerr.Access)
}

func TestAuthService_GetUserInfo(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:       userID,
		Username: "somebody42",
		Profile: entity.Profile{
			Headline: "hi there",
			LikedBy:  []uuid.UUID{uuid.New(), uuid.New()},
		},
	}

	f.userRepo.On("FindByID", ctx, userID).Return(user, nil)

	out, err := f.service.GetUserInfo(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, out.ID)
	assert.Equal(t, "somebody42", out.Username)
	assert.Equal(t, "hi there", out.Headline)
	assert.Equal(t, 2, out.Likes)
}

func TestAuthService_GetUserInfo_Deleted(t *testing.T) {
	f := newAuthServiceFixtures()
	ctx := context.Background()
	userID := uuid.New()

	f.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := f.service.GetUserInfo(ctx, userID)

	var nf *domainerrors.NotFound
	require.ErrorAs(t, err, &nf)
}
