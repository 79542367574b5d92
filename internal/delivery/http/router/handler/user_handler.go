package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "mingle/internal/delivery/context"
	domainerrors "mingle/internal/domain/errors"
	"mingle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=6,max=20"`
	Password string `json:"password" validate:"required,min=6,max=20"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=6,max=20"`
	Password *string `json:"password" validate:"omitempty,min=6,max=20"`
}

// Register creates a new account.
func (h *UserHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.NewValidationError("body", "Malformed request body.")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, map[string]uuid.UUID{"id": output.ID})
}

// GetAll lists every account.
func (h *UserHandler) GetAll(c echo.Context) error {
	outputs, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, newUserResponseList(outputs))
}

// GetSingle returns one account summary.
func (h *UserHandler) GetSingle(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetSingle(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, newUserResponse(output))
}

// Update changes the account's credentials.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input updateUserRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.NewValidationError("body", "Malformed request body.")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Update(c.Request().Context(), deliverycontext.GetUserID(c), id, usecase.UpdateUserInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, newUserResponse(output))
}

// Delete removes the account and everything referencing it.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), deliverycontext.GetUserID(c), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusOK)
}

// parseIDParam reads the :id path parameter. A malformed id can never match
// an existing account, so it reads as 404 rather than 400.
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.NewNotFound("User with provided id does not exist.")
	}

	return id, nil
}
