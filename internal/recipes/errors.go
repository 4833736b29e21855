package recipes

import "errors"

var (
	// ErrForbidden is returned when a requester tries to mutate a recipe they
	// did not create.
	ErrForbidden = errors.New("recipes: only the author can modify a recipe")

	// ErrUnauthenticated is returned when an operation requiring a signed-in
	// user is called without one.
	ErrUnauthenticated = errors.New("recipes: sign-in required")
)

// ValidationError reports a rejected input. It is detected before any store
// call, so no partial state is written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "recipes: invalid input: " + e.Reason
}
