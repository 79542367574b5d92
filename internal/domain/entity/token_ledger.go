// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "github.com/google/uuid"

// TokenLedger is the per-user set of currently valid refresh-token identifiers.
// Membership in the ledger is the sole authority for refresh-token validity:
// a refresh token whose embedded id is missing here is dead, no matter how
// good its signature looks. Ids are random UUIDs, never reused.
type TokenLedger struct {
	UserID   uuid.UUID   // The user this ledger belongs to (ledger key).
	TokenIDs []uuid.UUID // Ids of refresh tokens that are still valid.
}

// NewTokenLedger returns an empty ledger for the given user. Ledgers are
// created lazily on first token issuance.
func NewTokenLedger(userID uuid.UUID) *TokenLedger {
	return &TokenLedger{UserID: userID}
}

// AddToken generates a fresh token id, records it in the ledger and returns
// it. The caller is responsible for persisting the ledger afterwards.
func (l *TokenLedger) AddToken() uuid.UUID {
	tokenID := uuid.New()
	l.TokenIDs = append(l.TokenIDs, tokenID)

	return tokenID
}

// RevokeToken removes tokenID from the ledger. Revoking an id that is not
// present is a no-op.
func (l *TokenLedger) RevokeToken(tokenID uuid.UUID) {
	l.TokenIDs = removeID(l.TokenIDs, tokenID)
}

// OwnsToken reports whether tokenID is currently valid for this user.
func (l *TokenLedger) OwnsToken(tokenID uuid.UUID) bool {
	return containsID(l.TokenIDs, tokenID)
}

// RevokeAll clears the ledger, invalidating every outstanding refresh token.
// Used on credential change and logout-from-everywhere.
func (l *TokenLedger) RevokeAll() {
	l.TokenIDs = nil
}
