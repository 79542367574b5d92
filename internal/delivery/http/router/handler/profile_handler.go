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

// ProfileHandler holds dependencies for profile and like-graph handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, logger: logger}
}

type updateProfileRequest struct {
	Headline string        `json:"headline" validate:"max=100"`
	Bio      string        `json:"bio" validate:"max=4000"`
	Contacts []contactBody `json:"contacts" validate:"dive"`
}

// Get returns a user's public profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, newProfileResponse(output))
}

// Update overwrites the profile's public fields.
func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var input updateProfileRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.NewValidationError("body", "Malformed request body.")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	contacts := make([]usecase.ContactInput, 0, len(input.Contacts))
	for _, contact := range input.Contacts {
		contacts = append(contacts, usecase.ContactInput{Type: contact.Type, Value: contact.Value})
	}

	output, err := h.uc.Update(c.Request().Context(), deliverycontext.GetUserID(c), id, usecase.UpdateProfileInput{
		Headline: input.Headline,
		Bio:      input.Bio,
		Contacts: contacts,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, newProfileResponse(output))
}

// Like records that the requester likes this profile.
func (h *ProfileHandler) Like(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Like(c.Request().Context(), deliverycontext.GetUserID(c), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusOK)
}

// Unlike withdraws a previously recorded like.
func (h *ProfileHandler) Unlike(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Unlike(c.Request().Context(), deliverycontext.GetUserID(c), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusOK)
}

// Fans lists the users who like this profile.
func (h *ProfileHandler) Fans(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	outputs, err := h.uc.Fans(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, newUserResponseList(outputs))
}

// Favorites lists the users whose profiles this user likes.
func (h *ProfileHandler) Favorites(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	outputs, err := h.uc.Favorites(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, newUserResponseList(outputs))
}

// ShareQR renders a QR code image pointing at this profile.
func (h *ProfileHandler) ShareQR(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	png, err := h.uc.ShareQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
