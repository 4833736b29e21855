// Package httpapi holds the JSON plumbing shared by the handlers: request
// decoding, response encoding, and the mapping from service errors to HTTP
// statuses.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/recipespace/server/internal/recipedb"
	"github.com/recipespace/server/internal/recipes"
	"github.com/recipespace/server/internal/users"
)

// maxBodyBytes caps request bodies. Images travel as base64 data URLs, so
// the limit is generous.
const maxBodyBytes = 32 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// Decode reads a JSON request body into v.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &recipes.ValidationError{Reason: "malformed request body"}
	}
	return nil
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("httpapi: encoding response", "error", err)
	}
}

// WriteError maps a service error to an HTTP status. Validation, identity,
// ownership, and absence each have a status for programmatic handling;
// everything else collapses to a logged generic failure.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *recipes.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Reason})
	case errors.Is(err, users.ErrNicknameRequired):
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "nickname is required"})
	case errors.Is(err, recipes.ErrUnauthenticated):
		WriteJSON(w, http.StatusUnauthorized, errorResponse{Error: "sign-in required"})
	case errors.Is(err, recipes.ErrForbidden):
		WriteJSON(w, http.StatusForbidden, errorResponse{Error: "only the author can do that"})
	case errors.Is(err, recipedb.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, users.ErrIncompleteProfile):
		WriteJSON(w, http.StatusNotFound, errorResponse{Error: "profile not set"})
	default:
		slog.ErrorContext(r.Context(), "httpapi: request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "something went wrong"})
	}
}
