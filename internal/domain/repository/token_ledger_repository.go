// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"mingle/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLedgerNotFound is returned when no token ledger exists for a user.
// Ledgers are created lazily, so this is the normal state for a user who has
// never been issued a token.
var ErrLedgerNotFound = errors.New("token ledger not found")

// TokenLedgerRepository persists the per-user refresh-token ledgers.
type TokenLedgerRepository interface {
	// FindByUser loads the ledger for userID, or ErrLedgerNotFound.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.TokenLedger, error)

	// Save writes the ledger's current token-id set, adding new ids and
	// removing revoked ones.
	Save(ctx context.Context, ledger *entity.TokenLedger) error

	// DeleteByUser removes the user's ledger entirely. Deleting an absent
	// ledger is not an error.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
