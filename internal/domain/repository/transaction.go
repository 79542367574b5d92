package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// It lets the use case layer group multi-row writes (like/unlike updating two
// users, account deletion cascades) without depending on a specific DB driver.
type TransactionManager interface {
	// Execute runs fn within a single database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed. All
	// repositories obtained from the factory share the transaction.
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// LedgerRepo returns a TokenLedgerRepository bound to the current transaction.
	LedgerRepo() TokenLedgerRepository
}
