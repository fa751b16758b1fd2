package deck

import "fmt"

// Authorize returns ErrOwnership when caller is set and does not own p. An
// empty caller means the request was authorized upstream.
func Authorize(p Presentation, caller string) error {
	if caller == "" || caller == p.OwnerID {
		return nil
	}
	return fmt.Errorf("%w: presentation %s", ErrOwnership, p.ID)
}

// AuthorizeRead is Authorize, except public presentations are readable by anyone.
func AuthorizeRead(p Presentation, caller string) error {
	if p.IsPublic {
		return nil
	}
	return Authorize(p, caller)
}
