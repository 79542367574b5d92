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

// tokenLedgerRepository implements the domain.TokenLedgerRepository interface.
// A ledger is materialized from the user's rows in token_ledger_entries.
type tokenLedgerRepository struct {
	db *gorm.DB
}

// NewTokenLedgerRepository is the constructor for tokenLedgerRepository.
func NewTokenLedgerRepository(db *gorm.DB) repository.TokenLedgerRepository {
	return &tokenLedgerRepository{db: db}
}

// FindByUser loads the ledger for userID. A user with no entry rows has no
// ledger, which is reported as ErrLedgerNotFound.
func (repo *tokenLedgerRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.TokenLedger, error) {
	var entries []*model.TokenLedgerEntryModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token ledger")
	}

	if len(entries) == 0 {
		return nil, repository.ErrLedgerNotFound
	}

	ledger := entity.NewTokenLedger(userID)
	for _, entry := range entries {
		ledger.TokenIDs = append(ledger.TokenIDs, entry.TokenID)
	}

	return ledger, nil
}

// Save diffs the ledger's token-id set against the stored rows, inserting new
// ids and deleting revoked ones.
func (repo *tokenLedgerRepository) Save(ctx context.Context, ledger *entity.TokenLedger) error {
	db := repo.db.WithContext(ctx)

	var stored []*model.TokenLedgerEntryModel
	if err := db.Where("user_id = ?", ledger.UserID).Find(&stored).Error; err != nil {
		return errors.Wrap(err, "failed to load token ledger rows")
	}

	storedSet := make(map[uuid.UUID]struct{}, len(stored))
	for _, entry := range stored {
		storedSet[entry.TokenID] = struct{}{}
	}
	wantSet := make(map[uuid.UUID]struct{}, len(ledger.TokenIDs))
	for _, tokenID := range ledger.TokenIDs {
		wantSet[tokenID] = struct{}{}
	}

	var toInsert []*model.TokenLedgerEntryModel
	for _, tokenID := range ledger.TokenIDs {
		if _, ok := storedSet[tokenID]; !ok {
			toInsert = append(toInsert, &model.TokenLedgerEntryModel{
				TokenID: tokenID,
				UserID:  ledger.UserID,
			})
		}
	}
	var toDelete []uuid.UUID
	for tokenID := range storedSet {
		if _, ok := wantSet[tokenID]; !ok {
			toDelete = append(toDelete, tokenID)
		}
	}

	if len(toInsert) > 0 {
		if err := db.Create(&toInsert).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to insert token ledger rows")
		}
	}
	if len(toDelete) > 0 {
		if err := db.Where("user_id = ? AND token_id IN ?", ledger.UserID, toDelete).
			Delete(&model.TokenLedgerEntryModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete token ledger rows")
		}
	}

	return nil
}

// DeleteByUser removes the user's ledger entirely. Deleting an absent ledger
// is not an error.
func (repo *tokenLedgerRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.TokenLedgerEntryModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete token ledger")
	}

	return nil
}
