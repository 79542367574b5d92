package mocks

import (
	"mingle/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TokenService is a mock implementation of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) IssuePair(userID, refreshTokenID uuid.UUID) (*entity.TokenPair, error) {
	args := m.Called(userID, refreshTokenID)
	if pair, ok := args.Get(0).(*entity.TokenPair); ok {
		return pair, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenService) ParseAccessToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	if id, ok := args.Get(0).(uuid.UUID); ok {
		return id, args.Error(1)
	}

	return uuid.Nil, args.Error(1)
}

func (m *TokenService) ParseRefreshToken(token string) (uuid.UUID, uuid.UUID, error) {
	args := m.Called(token)

	userID, _ := args.Get(0).(uuid.UUID)
	tokenID, _ := args.Get(1).(uuid.UUID)

	return userID, tokenID, args.Error(2)
}

// PasswordHasher is a mock implementation of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// QRCodeService is a mock implementation of service.QRCodeService.
type QRCodeService struct {
	mock.Mock
}

func (m *QRCodeService) ProfileQR(userID uuid.UUID) ([]byte, error) {
	args := m.Called(userID)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}
