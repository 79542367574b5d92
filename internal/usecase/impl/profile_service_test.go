package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"mingle/internal/domain/entity"
	domainerrors "mingle/internal/domain/errors"
	"mingle/internal/domain/repository"
	"mingle/internal/mocks"
	"mingle/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileServiceFixtures struct {
	userRepo  *mocks.UserRepository
	qrService *mocks.QRCodeService
	service   usecase.ProfileUsecase
}

func newProfileServiceFixtures() *profileServiceFixtures {
	userRepo := &mocks.UserRepository{}
	qrService := &mocks.QRCodeService{}
	txManager := &mocks.TransactionManager{
		Factory: &mocks.RepositoryFactory{User: userRepo, Ledger: &mocks.TokenLedgerRepository{}},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewProfileService(ProfileServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		QRService: qrService,
		Logger:    logger,
	})

	return &profileServiceFixtures{
		userRepo:  userRepo,
		qrService: qrService,
		service:   svc,
	}
}

func TestProfileService_Get(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()
	user := &entity.User{
		ID:       id,
		Username: "somebody42",
		Profile: entity.Profile{
			Headline: "hello",
			Bio:      "long story",
			Contacts: []entity.Contact{{Type: "email", Value: "a@b.c"}},
			LikedBy:  []uuid.UUID{uuid.New()},
		},
	}

	f.userRepo.On("FindByID", ctx, id).Return(user, nil)

	out, err := f.service.Get(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, "hello", out.Headline)
	assert.Equal(t, "long story", out.Bio)
	assert.Equal(t, 1, out.Likes)
	require.Len(t, out.Contacts, 1)
	assert.Equal(t, "email", out.Contacts[0].Type)
}

func TestProfileService_Get_NotFound(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()

	f.userRepo.On("FindByID", ctx, id).Return(nil, repository.ErrUserNotFound)

	_, err := f.service.Get(ctx, id)

	var nf *domainerrors.NotFound
	require.ErrorAs(t, err, &nf)
}

func TestProfileService_Update_Success(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()
	user := &entity.User{ID: id, Username: "somebody42"}

	f.userRepo.On("FindByID", ctx, id).Return(user, nil)
	f.userRepo.On("Update", ctx, user).Return(nil)

	out, err := f.service.Update(ctx, id, id, usecase.UpdateProfileInput{
		Headline: "new headline",
		Bio:      "new bio",
		Contacts: []usecase.ContactInput{{Type: "phone", Value: "555-1234"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "new headline", out.Headline)
	assert.Equal(t, "new bio", user.Profile.Bio)
	require.Len(t, user.Profile.Contacts, 1)
	assert.Equal(t, "phone", user.Profile.Contacts[0].Type)
}

func TestProfileService_Update_NotOwner(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()
	user := &entity.User{ID: id}

	f.userRepo.On("FindByID", ctx, id).Return(user, nil)

	_, err := f.service.Update(ctx, uuid.New(), id, usecase.UpdateProfileInput{})

	var av *domainerrors.AccessViolation
	require.ErrorAs(t, err, &av)
	f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_Update_MissingProfileBeatsOwnership(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()

	// A stranger probing a missing profile sees 404, never 403.
	f.userRepo.On("FindByID", ctx, id).Return(nil, repository.ErrUserNotFound)

	_, err := f.service.Update(ctx, uuid.New(), id, usecase.UpdateProfileInput{})

	var nf *domainerrors.NotFound
	require.ErrorAs(t, err, &nf)
}

func TestProfileService_Like_Success(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	requesterID := uuid.New()
	targetID := uuid.New()
	target := &entity.User{ID: targetID}
	requester := &entity.User{ID: requesterID}

	f.userRepo.On("FindByID", ctx, targetID).Return(target, nil)
	f.userRepo.On("FindByID", ctx, requesterID).Return(requester, nil)
	f.userRepo.On("Update", ctx, requester).Return(nil)

	err := f.service.Like(ctx, requesterID, targetID)

	require.NoError(t, err)
	assert.True(t, requester.Profile.Likes(targetID))
}

func TestProfileService_Like_AlreadyLiked(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	requesterID := uuid.New()
	targetID := uuid.New()
	target := &entity.User{ID: targetID}
	requester := &entity.User{ID: requesterID, Profile: entity.Profile{Liked: []uuid.UUID{targetID}}}

	f.userRepo.On("FindByID", ctx, targetID).Return(target, nil)
	f.userRepo.On("FindByID", ctx, requesterID).Return(requester, nil)

	err := f.service.Like(ctx, requesterID, targetID)

	var conflict *domainerrors.Conflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "User profile is already liked by the requester.", conflict.Reason)
	f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_Like_MissingTarget(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	targetID := uuid.New()

	f.userRepo.On("FindByID", ctx, targetID).Return(nil, repository.ErrUserNotFound)

	err := f.service.Like(ctx, uuid.New(), targetID)

	var nf *domainerrors.NotFound
	require.ErrorAs(t, err, &nf)
}

func TestProfileService_Like_SelfLikeAllowed(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()
	user := &entity.User{ID: id}

	f.userRepo.On("FindByID", ctx, id).Return(user, nil)
	f.userRepo.On("Update", ctx, user).Return(nil)

	err := f.service.Like(ctx, id, id)

	require.NoError(t, err)
	assert.True(t, user.Profile.Likes(id))
}

func TestProfileService_Unlike_RoundTrip(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	requesterID := uuid.New()
	targetID := uuid.New()
	target := &entity.User{ID: targetID}
	requester := &entity.User{ID: requesterID, Profile: entity.Profile{Liked: []uuid.UUID{targetID}}}

	f.userRepo.On("FindByID", ctx, targetID).Return(target, nil)
	f.userRepo.On("FindByID", ctx, requesterID).Return(requester, nil)
	f.userRepo.On("Update", ctx, requester).Return(nil)

	err := f.service.Unlike(ctx, requesterID, targetID)

	require.NoError(t, err)
	assert.False(t, requester.Profile.Likes(targetID))
}

func TestProfileService_Unlike_NotLiked(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	requesterID := uuid.New()
	targetID := uuid.New()
	target := &entity.User{ID: targetID}
	requester := &entity.User{ID: requesterID}

	f.userRepo.On("FindByID", ctx, targetID).Return(target, nil)
	f.userRepo.On("FindByID", ctx, requesterID).Return(requester, nil)

	err := f.service.Unlike(ctx, requesterID, targetID)

	var conflict *domainerrors.Conflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "User profile was not previously liked by the requester.", conflict.Reason)
}

func TestProfileService_FansAndFavorites(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()
	fanID := uuid.New()
	favoriteID := uuid.New()
	user := &entity.User{
		ID: id,
		Profile: entity.Profile{
			Liked:   []uuid.UUID{favoriteID},
			LikedBy: []uuid.UUID{fanID},
		},
	}
	fan := &entity.User{ID: fanID, Username: "fanuser1"}
	favorite := &entity.User{ID: favoriteID, Username: "favuser12"}

	f.userRepo.On("FindByID", ctx, id).Return(user, nil)
	f.userRepo.On("FindByIDs", ctx, []uuid.UUID{fanID}).Return([]*entity.User{fan}, nil)
	f.userRepo.On("FindByIDs", ctx, []uuid.UUID{favoriteID}).Return([]*entity.User{favorite}, nil)

	fans, err := f.service.Fans(ctx, id)
	require.NoError(t, err)
	require.Len(t, fans, 1)
	assert.Equal(t, "fanuser1", fans[0].Username)

	favorites, err := f.service.Favorites(ctx, id)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "favuser12", favorites[0].Username)
}

func TestProfileService_ShareQR(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()
	png := []byte{0x89, 'P', 'N', 'G'}

	f.userRepo.On("ExistsWithID", ctx, id).Return(true, nil)
	f.qrService.On("ProfileQR", id).Return(png, nil)

	got, err := f.service.ShareQR(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestProfileService_ShareQR_NotFound(t *testing.T) {
	f := newProfileServiceFixtures()
	ctx := context.Background()
	id := uuid.New()

	f.userRepo.On("ExistsWithID", ctx, id).Return(false, nil)

	_, err := f.service.ShareQR(ctx, id)

	var nf *domainerrors.NotFound
	require.ErrorAs(t, err, &nf)
	f.qrService.AssertNotCalled(t, "ProfileQR", mock.Anything)
}
