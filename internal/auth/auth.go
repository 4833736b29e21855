// Package auth reads the verified Firebase identity from the request
// context. Handlers pass the identity on explicitly; nothing below the
// handlers touches ambient auth state.
package auth

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
)

// UserID returns the signed-in user's UID, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil {
		return ""
	}
	return tok.UID
}

// Email returns the signed-in user's email identity, or "".
func Email(ctx context.Context) string {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil {
		return ""
	}
	if id, ok := tok.Firebase.Identities["email"]; ok {
		if idAny, ok := id.([]any); ok && len(idAny) > 0 {
			if email, ok := idAny[0].(string); ok {
				return email
			}
		}
	}
	return ""
}
