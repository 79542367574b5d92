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

const (
	msgAlreadyLiked = "User profile is already liked by the requester."
	msgNotLiked     = "User profile was not previously liked by the requester."
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	qrService service.QRCodeService
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	QRService service.QRCodeService
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		qrService: params.QRService,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Get returns the public profile of the given user.
func (srv *profileService) Get(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	user, err := srv.findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}

	return usecase.NewProfileOutput(user), nil
}

// Update overwrites the profile's public fields wholesale. Only the profile
// owner may call it; the existence check runs first so a stranger probing a
// missing profile still sees 404, not 403.
func (srv *profileService) Update(ctx context.Context, requesterID, userID uuid.UUID, input usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("userID", userID))

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		userRepo := repos.UserRepo()

		user, err := srv.findUser(ctx, userRepo, userID)
		if err != nil {
			return err
		}

		if requesterID != userID {
			return domainerrors.NewAccessViolation()
		}

		user.Profile.Headline = input.Headline
		user.Profile.Bio = input.Bio
		contacts := make([]entity.Contact, 0, len(input.Contacts))
		for _, contact := range input.Contacts {
			contacts = append(contacts, entity.Contact{Type: contact.Type, Value: contact.Value})
		}
		user.Profile.Contacts = contacts

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}

		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update rejected", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return usecase.NewProfileOutput(updated), nil
}

// Like records that the requester likes the target's profile. Both sides of
// the relation change together or not at all.
func (srv *profileService) Like(ctx context.Context, requesterID, targetID uuid.UUID) error {
	srv.log(ctx).Info("Liking profile", slog.Any("requesterID", requesterID), slog.Any("targetID", targetID))

	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		userRepo := repos.UserRepo()

		// Target existence is checked first; liking a ghost is 404, not 400.
		if _, err := srv.findUser(ctx, userRepo, targetID); err != nil {
			return err
		}

		requester, err := srv.findUser(ctx, userRepo, requesterID)
		if err != nil {
			return err
		}

		if requester.Profile.Likes(targetID) {
			return domainerrors.NewConflict(msgAlreadyLiked)
		}

		requester.Profile.AddLike(targetID)
		if err := userRepo.Update(ctx, requester); err != nil {
			return errors.Wrap(err, "failed to record like")
		}

		return nil
	})
}

// Unlike withdraws a previously recorded like.
func (srv *profileService) Unlike(ctx context.Context, requesterID, targetID uuid.UUID) error {
	srv.log(ctx).Info("Unliking profile", slog.Any("requesterID", requesterID), slog.Any("targetID", targetID))

	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		userRepo := repos.UserRepo()

		if _, err := srv.findUser(ctx, userRepo, targetID); err != nil {
			return err
		}

		requester, err := srv.findUser(ctx, userRepo, requesterID)
		if err != nil {
			return err
		}

		if !requester.Profile.Likes(targetID) {
			return domainerrors.NewConflict(msgNotLiked)
		}

		requester.Profile.RemoveLike(targetID)
		if err := userRepo.Update(ctx, requester); err != nil {
			return errors.Wrap(err, "failed to withdraw like")
		}

		return nil
	})
}

// Fans lists the users who like the given user's profile.
func (srv *profileService) Fans(ctx context.Context, userID uuid.UUID) ([]*usecase.UserOutput, error) {
	user, err := srv.findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}

	return srv.loadSummaries(ctx, user.Profile.LikedBy)
}

// Favorites lists the users whose profiles the given user likes.
func (srv *profileService) Favorites(ctx context.Context, userID uuid.UUID) ([]*usecase.UserOutput, error) {
	user, err := srv.findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}

	return srv.loadSummaries(ctx, user.Profile.Liked)
}

// ShareQR renders a PNG QR code pointing at the user's public profile.
func (srv *profileService) ShareQR(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	exists, err := srv.userRepo.ExistsWithID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check user existence")
	}
	if !exists {
		return nil, domainerrors.NewNotFound(msgUserIDNotFound)
	}

	png, err := srv.qrService.ProfileQR(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render profile QR")
	}

	return png, nil
}

// findUser translates the repository's not-found into the API's 404.
func (srv *profileService) findUser(ctx context.Context, userRepo repository.UserRepository, id uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.NewNotFound(msgUserIDNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// loadSummaries resolves a set of user ids to account summaries, skipping ids
// whose rows are gone.
func (srv *profileService) loadSummaries(ctx context.Context, ids []uuid.UUID) ([]*usecase.UserOutput, error) {
	users, err := srv.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load users")
	}

	outputs := make([]*usecase.UserOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, usecase.NewUserOutput(user))
	}

	return outputs, nil
}
