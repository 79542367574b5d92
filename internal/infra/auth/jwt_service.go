// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"mingle/config"
	"mingle/internal/domain/entity"
	"mingle/internal/domain/service"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Both halves of a pair are signed with the same secret and distinguished by a "type" claim.
type jwtService struct {
	secret     string        // Secret key for signing both token kinds.
	accessTTL  time.Duration // Time-to-live for access tokens.
	refreshTTL time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Token.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:     cfg.Token.Secret,
		accessTTL:  cfg.Token.AccessLifetime,
		refreshTTL: cfg.Token.RefreshLifetime,
	}, nil
}

// IssuePair creates a matched access/refresh token pair. The access token
// carries the user id as its subject; the refresh token's subject is the
// [userID, tokenID] pair so a presented refresh token can be checked against
// the user's ledger.
func (s *jwtService) IssuePair(userID, refreshTokenID uuid.UUID) (*entity.TokenPair, error) {
	accessToken, err := s.sign(userID.String(), s.accessTTL, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign([]string{userID.String(), refreshTokenID.String()}, s.refreshTTL, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	return &entity.TokenPair{Access: accessToken, Refresh: refreshToken}, nil
}

// ParseAccessToken verifies an access token and extracts the user id from it.
// Any verification failure, including a refresh token presented as an access
// token, is reported as service.ErrTokenInvalid.
func (s *jwtService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.parse(tokenString, tokenTypeAccess)
	if err != nil {
		return uuid.Nil, err
	}

	subject, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, service.ErrTokenInvalid
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, service.ErrTokenInvalid
	}

	return userID, nil
}

// ParseRefreshToken verifies a refresh token and extracts the user id and the
// ledger token id from its subject pair.
func (s *jwtService) ParseRefreshToken(tokenString string) (userID, tokenID uuid.UUID, err error) {
	claims, err := s.parse(tokenString, tokenTypeRefresh)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	subject, ok := claims["sub"].([]any)
	if !ok || len(subject) != 2 {
		return uuid.Nil, uuid.Nil, service.ErrTokenInvalid
	}

	ids := make([]uuid.UUID, 0, 2)
	for _, raw := range subject {
		s, ok := raw.(string)
		if !ok {
			return uuid.Nil, uuid.Nil, service.ErrTokenInvalid
		}
		id, parseErr := uuid.Parse(s)
		if parseErr != nil {
			return uuid.Nil, uuid.Nil, service.ErrTokenInvalid
		}
		ids = append(ids, id)
	}

	return ids[0], ids[1], nil
}

// sign is a private helper to create a JWT with specific claims.
func (s *jwtService) sign(subject any, ttl time.Duration, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,                    // Subject (who the token is for)
		"iat":  time.Now().Unix(),          // Issued At
		"exp":  time.Now().Add(ttl).Unix(), // Expiration Time
		"type": tokenType,                  // Type of token (access or refresh)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// parse validates a token string and checks that its "type" claim matches.
func (s *jwtService) parse(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, service.ErrTokenInvalid
	}
	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return nil, service.ErrTokenInvalid
	}

	return claims, nil
}
