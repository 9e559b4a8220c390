package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal"
)

type contextKey struct{}

// EnsureDistribution resolves the {kind} URL parameter to a catalog model and
// stores it in the request context. Unknown kinds end the request with 404.
func EnsureDistribution(logger *internal.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "kind")
			kind, err := core.ParseKind(raw)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			m, err := distribution.Lookup(kind)
			if err != nil {
				logger.Debug("[EnsureDistribution] %q: %v", raw, err)
				http.Error(w, "unknown distribution "+raw, http.StatusNotFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, m)))
		})
	}
}

// Distribution returns the model stored by EnsureDistribution.
func Distribution(ctx context.Context) (distribution.Model, bool) {
	m, ok := ctx.Value(contextKey{}).(distribution.Model)
	return m, ok
}
