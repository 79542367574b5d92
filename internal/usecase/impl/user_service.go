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

const msgUsernameTaken = "Username already taken by someone else."

// userService implements the UserUsecase interface.
type userService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	ledgerRepo repository.TokenLedgerRepository
	hasher     service.PasswordHasher
	logger     *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	UserRepo   repository.UserRepository
	LedgerRepo repository.TokenLedgerRepository
	Hasher     service.PasswordHasher
	Logger     *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		ledgerRepo: params.LedgerRepo,
		hasher:     params.Hasher,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with an empty profile.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.UserOutput, error) {
	srv.log(ctx).Info("Registering user", slog.String("username", input.Username))

	// 1. Pre-check the username. The unique constraint is still the authority
	// under concurrency; Create maps its violation to the same rejection.
	taken, err := srv.userRepo.ExistsWithUsername(ctx, input.Username, uuid.Nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check username")
	}
	if taken {
		return nil, domainerrors.NewValidationError("username", msgUsernameTaken)
	}

	// 2. Hash the password and persist the account.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		PasswordHash: passwordHash,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, domainerrors.NewValidationError("username", msgUsernameTaken)
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("User registered", slog.Any("userID", user.ID))

	return usecase.NewUserOutput(user), nil
}

// GetAll lists every account, oldest first.
func (srv *userService) GetAll(ctx context.Context) ([]*usecase.UserOutput, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	outputs := make([]*usecase.UserOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, usecase.NewUserOutput(user))
	}

	return outputs, nil
}

// GetSingle returns one account summary by id.
func (srv *userService) GetSingle(ctx context.Context, id uuid.UUID) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.NewNotFound(msgUserIDNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return usecase.NewUserOutput(user), nil
}

// Update changes the account's credentials. Changing either credential
// revokes every outstanding refresh token, forcing re-authentication
// everywhere the account is logged in.
func (srv *userService) Update(ctx context.Context, requesterID, id uuid.UUID, input usecase.UpdateUserInput) (*usecase.UserOutput, error) {
	srv.log(ctx).Info("Updating user", slog.Any("userID", id))

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		userRepo := repos.UserRepo()

		// 1. The target must exist.
		user, err := userRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.NewNotFound(msgUserIDNotFound)
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by id")
		}

		// 2. A requested username must not collide with anyone else's.
		if input.Username != nil && *input.Username != user.Username {
			taken, err := userRepo.ExistsWithUsername(ctx, *input.Username, id)
			if err != nil {
				return errors.Wrap(err, "failed to check username")
			}
			if taken {
				return domainerrors.NewValidationError("username", msgUsernameTaken)
			}
		}

		// 3. Only the owner may change credentials.
		if requesterID != id {
			return domainerrors.NewAccessViolation()
		}

		// 4. Apply the changes.
		credentialsChanged := false
		if input.Username != nil && *input.Username != user.Username {
			user.Username = *input.Username
			credentialsChanged = true
		}
		if input.Password != nil {
			passwordHash, err := srv.hasher.Hash(*input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			user.PasswordHash = passwordHash
			credentialsChanged = true
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUsernameTaken) {
				return domainerrors.NewValidationError("username", msgUsernameTaken)
			}

			return errors.Wrap(err, "failed to update user")
		}

		// 5. New credentials kill every outstanding refresh token.
		if credentialsChanged {
			if err := repos.LedgerRepo().DeleteByUser(ctx, id); err != nil {
				return errors.Wrap(err, "failed to revoke tokens")
			}
		}

		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("User update rejected", slog.Any("userID", id), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User updated", slog.Any("userID", id))

	return usecase.NewUserOutput(updated), nil
}

// Delete removes the account and everything that references it: likes in both
// directions, the token ledger, the profile, and the account row itself.
func (srv *userService) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting user", slog.Any("userID", id))

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		userRepo := repos.UserRepo()

		exists, err := userRepo.ExistsWithID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to check user existence")
		}
		if !exists {
			return domainerrors.NewNotFound(msgUserIDNotFound)
		}

		if requesterID != id {
			return domainerrors.NewAccessViolation()
		}

		// Cascade: likes on both sides, then the ledger, then the account.
		if err := userRepo.RemoveUserFromLikes(ctx, id); err != nil {
			return errors.Wrap(err, "failed to remove likes")
		}
		if err := repos.LedgerRepo().DeleteByUser(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete token ledger")
		}
		if err := userRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("User deletion rejected", slog.Any("userID", id), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("User deleted", slog.Any("userID", id))

	return nil
}
