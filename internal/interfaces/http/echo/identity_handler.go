package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/profile-import/internal/application/profileimport"
)

type IdentityHandler struct {
	useCase app.GetIdentity
}

func NewIdentityHandler(useCase app.GetIdentity) *IdentityHandler {
	return &IdentityHandler{useCase: useCase}
}

func (h *IdentityHandler) GetIdentity(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetIdentityInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidIdentityID) {
			return errorJSON(c, http.StatusBadRequest, "invalid_identity_id", "id must be a valid UUID")
		}
		if errors.Is(err, app.ErrIdentityNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "identity not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to get identity")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
