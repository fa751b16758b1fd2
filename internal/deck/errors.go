package deck

import (
	"errors"
	"net/http"
)

var (
	ErrContentFormat    = errors.New("generated content is not valid JSON")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrOrderingConflict = errors.New("slide position out of range")
	ErrNotFound         = errors.New("not found")
	ErrOwnership        = errors.New("caller does not own the presentation")
)

// MapHTTPStatus maps taxonomy errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrOwnership):
		return http.StatusForbidden
	case errors.Is(err, ErrOrderingConflict):
		return http.StatusConflict
	case errors.Is(err, ErrContentFormat), errors.Is(err, ErrSchemaValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
