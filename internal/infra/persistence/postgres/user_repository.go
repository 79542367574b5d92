// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, with contacts and both
// sides of the like relation attached.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Contacts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	user := toUserDomain(&userM)
	if err := repo.attachLikes(ctx, []*entity.User{user}); err != nil {
		return nil, err
	}

	return user, nil
}

// FindByUsername retrieves a single user by their unique username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Contacts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("username = ?", username).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	user := toUserDomain(&userM)
	if err := repo.attachLikes(ctx, []*entity.User{user}); err != nil {
		return nil, err
	}

	return user, nil
}

// FindAll retrieves every user, ordered by creation time.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var userModels []*model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Contacts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at ASC").
		Find(&userModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	if err := repo.attachLikes(ctx, users); err != nil {
		return nil, err
	}

	return users, nil
}

// FindByIDs retrieves the users whose ids are in the given set.
func (repo *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	var userModels []*model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Contacts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&userModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users by ids")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	if err := repo.attachLikes(ctx, users); err != nil {
		return nil, err
	}

	return users, nil
}

// ExistsWithID reports whether a user with the given id exists.
func (repo *userRepository) ExistsWithID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check user existence")
	}

	return count > 0, nil
}

// ExistsWithUsername reports whether the username is taken by a user other than exceptID.
func (repo *userRepository) ExistsWithUsername(ctx context.Context, username string, exceptID uuid.UUID) (bool, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", username)
	if exceptID != uuid.Nil {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check username existence")
	}

	return count > 0, nil
}

// Create persists a new user entity, including its contacts, and fills in the
// generated id and timestamps.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrUsernameTaken
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update persists credential and profile changes. Contacts are replaced
// wholesale; the Liked set is diffed against the stored like rows. The LikedBy
// set is derived on read and never written here.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	db := repo.db.WithContext(ctx)

	updates := map[string]any{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"headline":      user.Profile.Headline,
		"bio":           user.Profile.Bio,
	}
	result := db.Model(&model.UserModel{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrUsernameTaken
		}

		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	if err := repo.replaceContacts(ctx, user); err != nil {
		return err
	}

	return repo.syncLiked(ctx, user)
}

// Delete removes the user row and their contacts. Like rows and the token
// ledger are cleaned up by the caller's cascade.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("user_id = ?", id).Delete(&model.ContactModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete user contacts")
	}

	result := db.Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// RemoveUserFromLikes deletes every like relation the user participates in, on either side.
func (repo *userRepository) RemoveUserFromLikes(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("liker_id = ? OR likee_id = ?", id, id).
		Delete(&model.ProfileLikeModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to remove user from likes")
	}

	return nil
}

// replaceContacts rewrites the user's contact rows to match the entity.
func (repo *userRepository) replaceContacts(ctx context.Context, user *entity.User) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("user_id = ?", user.ID).Delete(&model.ContactModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear user contacts")
	}

	if len(user.Profile.Contacts) == 0 {
		return nil
	}

	contactModels := make([]*model.ContactModel, 0, len(user.Profile.Contacts))
	for i, contact := range user.Profile.Contacts {
		contactModels = append(contactModels, &model.ContactModel{
			UserID:   user.ID,
			Type:     contact.Type,
			Value:    contact.Value,
			Position: i,
		})
	}

	if err := db.Create(&contactModels).Error; err != nil {
		return errors.Wrap(err, "failed to write user contacts")
	}

	return nil
}

// syncLiked diffs the entity's Liked set against the stored like rows and
// inserts or deletes rows so they match.
func (repo *userRepository) syncLiked(ctx context.Context, user *entity.User) error {
	db := repo.db.WithContext(ctx)

	var stored []*model.ProfileLikeModel
	if err := db.Where("liker_id = ?", user.ID).Find(&stored).Error; err != nil {
		return errors.Wrap(err, "failed to load like rows")
	}

	storedSet := make(map[uuid.UUID]struct{}, len(stored))
	for _, like := range stored {
		storedSet[like.LikeeID] = struct{}{}
	}
	wantSet := make(map[uuid.UUID]struct{}, len(user.Profile.Liked))
	for _, likeeID := range user.Profile.Liked {
		wantSet[likeeID] = struct{}{}
	}

	var toInsert []*model.ProfileLikeModel
	for _, likeeID := range user.Profile.Liked {
		if _, ok := storedSet[likeeID]; !ok {
			toInsert = append(toInsert, &model.ProfileLikeModel{LikerID: user.ID, LikeeID: likeeID})
		}
	}
	var toDelete []uuid.UUID
	for likeeID := range storedSet {
		if _, ok := wantSet[likeeID]; !ok {
			toDelete = append(toDelete, likeeID)
		}
	}

	if len(toInsert) > 0 {
		if err := db.Create(&toInsert).Error; err != nil {
			return errors.Wrap(err, "failed to insert like rows")
		}
	}
	if len(toDelete) > 0 {
		if err := db.Where("liker_id = ? AND likee_id IN ?", user.ID, toDelete).
			Delete(&model.ProfileLikeModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete like rows")
		}
	}

	return nil
}

// attachLikes fills the Liked and LikedBy sets of the given users from the
// profile_likes table in one pair of queries.
func (repo *userRepository) attachLikes(ctx context.Context, users []*entity.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(users))
	byID := make(map[uuid.UUID]*entity.User, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
		byID[user.ID] = user
	}

	var likes []*model.ProfileLikeModel
	err := repo.db.WithContext(ctx).
		Where("liker_id IN ? OR likee_id IN ?", ids, ids).
		Order("created_at ASC").
		Find(&likes).Error
	if err != nil {
		return errors.Wrap(err, "failed to load like relations")
	}

	for _, like := range likes {
		if liker, ok := byID[like.LikerID]; ok {
			liker.Profile.Liked = append(liker.Profile.Liked, like.LikeeID)
		}
		if likee, ok := byID[like.LikeeID]; ok {
			likee.Profile.LikedBy = append(likee.Profile.LikedBy, like.LikerID)
		}
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
// Like sets are attached separately by attachLikes.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	contacts := make([]entity.Contact, 0, len(data.Contacts))
	for _, contact := range data.Contacts {
		contacts = append(contacts, entity.Contact{
			Type:  contact.Type,
			Value: contact.Value,
		})
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Profile: entity.Profile{
			Headline: data.Headline,
			Bio:      data.Bio,
			Contacts: contacts,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	contacts := make([]*model.ContactModel, 0, len(data.Profile.Contacts))
	for i, contact := range data.Profile.Contacts {
		contacts = append(contacts, &model.ContactModel{
			UserID:   data.ID,
			Type:     contact.Type,
			Value:    contact.Value,
			Position: i,
		})
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Headline:     data.Profile.Headline,
		Bio:          data.Profile.Bio,
		Contacts:     contacts,
	}
}
