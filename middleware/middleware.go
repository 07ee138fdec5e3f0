// Package middleware validates JSON request bodies at HTTP boundaries.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	valido "github.com/valido-go/valido"
)

// ctxKeyValidated is the context key for the adapted request body.
type ctxKeyValidated struct{}

// validatedBody wraps the adapted value so a nil adaptation (a nullable body)
// is still distinguishable from an absent one.
type validatedBody struct {
	value any
}

// ContextWithValidated attaches an adapted body value to the context.
func ContextWithValidated(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValidated{}, validatedBody{value: v})
}

// ValidatedFromContext retrieves the adapted body value stored by JSON. ok
// reports whether a validated body is present at all; the value itself may be
// nil when the schema adapts a null body to nil.
func ValidatedFromContext(ctx context.Context) (any, bool) {
	b, ok := ctx.Value(ctxKeyValidated{}).(validatedBody)
	return b.value, ok
}

// ErrorPayload shapes a rejection for JSON responses.
func ErrorPayload(ve *valido.ValidationError) map[string]any {
	return map[string]any{"error": ve.ToText()}
}

// JSON decodes the request body as JSON, validates it against v and stores the
// adapted value in the request context for the next handler. Malformed bodies
// and rejected values answer 400 with an error payload.
func JSON(v valido.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decoded, err := valido.DecodeJSON(r.Body)
			if err != nil {
				writeError(w, map[string]any{"error": "malformed JSON body"})
				return
			}
			adapted, err := v.Validate(decoded)
			if err != nil {
				var ve *valido.ValidationError
				if errors.As(err, &ve) {
					writeError(w, ErrorPayload(ve))
					return
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValidated(r.Context(), adapted)))
		})
	}
}

func writeError(w http.ResponseWriter, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(payload)
}
