// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "mingle/internal/delivery/context"
	domainerrors "mingle/internal/domain/errors"
	"mingle/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// IssueTokenPair exchanges username/password credentials for a token pair.
func (h *AuthHandler) IssueTokenPair(c echo.Context) error {
	var input credentialsRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.NewValidationError("body", "Malformed request body.")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.IssueTokenPair(c.Request().Context(), usecase.CredentialsInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, tokenPairResponse{
		Access:  output.Pair.Access,
		Refresh: output.Pair.Refresh,
	})
}

// Refresh rotates a refresh token for a fresh pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var input refreshRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.NewValidationError("body", "Malformed request body.")
	}
	if input.Refresh == "" {
		return domainerrors.NewValidationError("refresh", "Refresh token is required.")
	}

	output, err := h.uc.RefreshTokenPair(c.Request().Context(), input.Refresh)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, tokenPairResponse{
		Access:  output.Pair.Access,
		Refresh: output.Pair.Refresh,
	})
}

// Me returns the account summary behind the presented access token.
func (h *AuthHandler) Me(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	output, err := h.uc.GetUserInfo(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, newUserResponse(output))
}
