// Package i18n carries the request's language through the context so lists
// can be collated the way the user's locale expects.
package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type tagContextKey struct{}

var tagContextKeyInstance = tagContextKey{}

// Middleware parses the first Accept-Language tag into the context.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lng := r.Header.Get("Accept-Language")
			lng, _, _ = strings.Cut(lng, ",")
			lng, _, _ = strings.Cut(lng, ";")
			lng = strings.TrimSpace(lng)

			if lng != "" && lng != "*" {
				ctx := context.WithValue(r.Context(), tagContextKeyInstance, language.Make(lng))
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Tag returns the request's language tag, or language.Und when none was sent.
func Tag(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(tagContextKeyInstance).(language.Tag); ok {
		return tag
	}
	return language.Und
}
