package http

import (
	"errors"
	"net/http"

	"fast-generic-api/internal/item"
	pkgErrors "fast-generic-api/pkg/errors"
	"fast-generic-api/pkg/serializer"
)

var (
	errItemNotFound   = pkgErrors.NewHTTPError(http.StatusNotFound, "item not found")
	errDuplicateName  = pkgErrors.NewHTTPError(http.StatusConflict, "item name already exists")
	errItemNotDeleted = pkgErrors.NewHTTPError(http.StatusConflict, "item is not deleted")
	errInvalidID      = pkgErrors.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Unknown errors become a 500 without leaking their text.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, item.ErrItemNotFound):
		return errItemNotFound
	case errors.Is(err, item.ErrDuplicateName):
		return errDuplicateName
	case errors.Is(err, item.ErrItemNotDeleted):
		return errItemNotDeleted
	case errors.Is(err, item.ErrNullName):
		return serializer.NewValidationError("name", serializer.CodeNull, "may not be null")
	case errors.Is(err, serializer.ErrValidation):
		return err
	default:
		return pkgErrors.ErrInternalServerError
	}
}
