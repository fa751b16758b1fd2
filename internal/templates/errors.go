package templates

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/locks"
)

// MapHTTPStatus maps template errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, locks.ErrLockTimeout) {
		return http.StatusServiceUnavailable
	}
	return deck.MapHTTPStatus(err)
}
