package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenLedgerEntryModel is the GORM-specific struct for the 'token_ledger_entries' table.
// Each row is one live refresh token id owned by a user; the set of rows for a
// user forms that user's token ledger.
type TokenLedgerEntryModel struct {
	TokenID   uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TokenLedgerEntryModel) TableName() string {
	return "token_ledger_entries"
}
