// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "mingle/internal/delivery/context"
	"mingle/internal/domain/entity"
	domainerrors "mingle/internal/domain/errors"
	"mingle/internal/domain/repository"
	"mingle/internal/domain/service"
	"mingle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const msgUserIDNotFound = "User with provided id does not exist."

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	ledgerRepo   repository.TokenLedgerRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	LedgerRepo   repository.TokenLedgerRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		ledgerRepo:   params.LedgerRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// IssueTokenPair validates the credentials and issues a fresh token pair,
// recording the refresh token's id in the user's ledger.
func (srv *authService) IssueTokenPair(ctx context.Context, input usecase.CredentialsInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Info("Issuing token pair", slog.String("username", input.Username))

	// 1. Resolve the account. The two rejection messages are part of the API
	// contract, keyed to the offending field.
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.NewValidationError("username", "User with such username does not exist.")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by username")
	}

	// 2. Verify the password against the stored hash.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.NewValidationError("password", "Incorrect password provided.")
	}

	// 3. Record a new refresh-token id in the ledger and sign the pair.
	var pair *entity.TokenPair
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		ledger, err := srv.loadOrCreateLedger(ctx, repos.LedgerRepo(), user.ID)
		if err != nil {
			return err
		}

		tokenID := ledger.AddToken()
		if err := repos.LedgerRepo().Save(ctx, ledger); err != nil {
			return errors.Wrap(err, "failed to save token ledger")
		}

		pair, err = srv.tokenService.IssuePair(user.ID, tokenID)
		if err != nil {
			return errors.Wrap(err, "failed to sign token pair")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue token pair", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Token pair issued", slog.Any("userID", user.ID))

	return &usecase.TokenPairOutput{Pair: pair}, nil
}

// RefreshTokenPair rotates a presented refresh token: the old id leaves the
// ledger, a new id enters it, and a fresh pair bound to the new id is signed.
// Every failure is reported uniformly so a caller cannot probe why a token died.
func (srv *authService) RefreshTokenPair(ctx context.Context, refreshToken string) (*usecase.TokenPairOutput, error) {
	// 1. Verify the signature and extract the [user, token] subject tuple.
	userID, tokenID, err := srv.tokenService.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.NewRefreshUnauthorized()
	}

	// 2. Rotate inside one transaction. A replayed token loses here: its id
	// is no longer in the ledger.
	var pair *entity.TokenPair
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		ledger, err := repos.LedgerRepo().FindByUser(ctx, userID)
		if errors.Is(err, repository.ErrLedgerNotFound) {
			return domainerrors.NewRefreshUnauthorized()
		}
		if err != nil {
			return errors.Wrap(err, "failed to load token ledger")
		}

		if !ledger.OwnsToken(tokenID) {
			return domainerrors.NewRefreshUnauthorized()
		}

		ledger.RevokeToken(tokenID)
		newTokenID := ledger.AddToken()
		if err := repos.LedgerRepo().Save(ctx, ledger); err != nil {
			return errors.Wrap(err, "failed to save token ledger")
		}

		pair, err = srv.tokenService.IssuePair(userID, newTokenID)
		if err != nil {
			return errors.Wrap(err, "failed to sign token pair")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh rotation rejected", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Token pair rotated", slog.Any("userID", userID))

	return &usecase.TokenPairOutput{Pair: pair}, nil
}

// Authenticate verifies an access token and confirms the subject account
// still exists. A token for a deleted account is as dead as a forged one.
func (srv *authService) Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	userID, err := srv.tokenService.ParseAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, domainerrors.NewAccessUnauthorized()
	}

	exists, err := srv.userRepo.ExistsWithID(ctx, userID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to check user existence")
	}
	if !exists {
		return uuid.Nil, domainerrors.NewAccessUnauthorized()
	}

	return userID, nil
}

// GetUserInfo returns the account summary behind an access token.
func (srv *authService) GetUserInfo(ctx context.Context, userID uuid.UUID) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.NewNotFound(msgUserIDNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return usecase.NewUserOutput(user), nil
}

// loadOrCreateLedger fetches the user's ledger, starting a fresh one on first
// token issuance.
func (srv *authService) loadOrCreateLedger(ctx context.Context, ledgerRepo repository.TokenLedgerRepository, userID uuid.UUID) (*entity.TokenLedger, error) {
	ledger, err := ledgerRepo.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrLedgerNotFound) {
		return entity.NewTokenLedger(userID), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token ledger")
	}

	return ledger, nil
}
