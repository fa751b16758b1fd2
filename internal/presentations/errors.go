package presentations

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/generator"
	"github.com/JaimeStill/slide-lab/internal/locks"
)

// MapHTTPStatus maps presentation and generation errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, generator.ErrGenerationTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, generator.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, generator.ErrResponseTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, locks.ErrLockTimeout):
		return http.StatusServiceUnavailable
	default:
		return deck.MapHTTPStatus(err)
	}
}
