package middleware

import (
	"strings"

	deliverycontext "mingle/internal/delivery/context"
	domainerrors "mingle/internal/domain/errors"
	"mingle/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes behind a valid Bearer access token.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate validates the access token and attaches the requester's id to
// the context. Missing header, bad token and deleted account all produce the
// same opaque 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.NewAccessUnauthorized()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.NewAccessUnauthorized()
		}

		userID, err := m.authUC.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		deliverycontext.SetUserID(c, userID)

		return next(c)
	}
}
