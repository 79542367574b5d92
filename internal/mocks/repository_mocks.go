// Package mocks provides hand-written testify mocks for the domain's
// repository and service interfaces.
package mocks

import (
	"context"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock implementation of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	args := m.Called(ctx, ids)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) ExistsWithID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ExistsWithUsername(ctx context.Context, username string, exceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, username, exceptID)

	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *UserRepository) RemoveUserFromLikes(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// TokenLedgerRepository is a mock implementation of repository.TokenLedgerRepository.
type TokenLedgerRepository struct {
	mock.Mock
}

func (m *TokenLedgerRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.TokenLedger, error) {
	args := m.Called(ctx, userID)
	if ledger, ok := args.Get(0).(*entity.TokenLedger); ok {
		return ledger, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenLedgerRepository) Save(ctx context.Context, ledger *entity.TokenLedger) error {
	args := m.Called(ctx, ledger)

	return args.Error(0)
}

func (m *TokenLedgerRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

// RepositoryFactory hands the test's mock repositories to transactional code.
type RepositoryFactory struct {
	User   repository.UserRepository
	Ledger repository.TokenLedgerRepository
}

func (f *RepositoryFactory) UserRepo() repository.UserRepository {
	return f.User
}

func (f *RepositoryFactory) LedgerRepo() repository.TokenLedgerRepository {
	return f.Ledger
}

// TransactionManager runs the callback immediately against the factory's
// mocks, without any real transaction semantics.
type TransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *TransactionManager) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
