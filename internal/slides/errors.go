package slides

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/locks"
)

// MapHTTPStatus maps slide errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, locks.ErrLockTimeout) {
		return http.StatusServiceUnavailable
	}
	return deck.MapHTTPStatus(err)
}
