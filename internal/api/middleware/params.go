package middleware

import (
	"context"
	"net/http"

	"github.com/dicelobby/accounts/internal/api/apierr"
	"github.com/dicelobby/accounts/internal/validation"
)

type contextKey string

const (
	paramsContextKey      contextKey = "params"
	gatewayContextKey     contextKey = "gateway"
	applicationContextKey contextKey = "application"
)

// Params creates middleware that builds the merged query/body parameter
// mapping once per request and stores it in the context. A body that is not
// a JSON object short-circuits with a bad_request outcome before any other
// check runs.
func Params() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, err := validation.FromRequest(r)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), paramsContextKey, params)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetParams returns the request's parameter mapping from the context
func GetParams(ctx context.Context) *validation.Params {
	params, _ := ctx.Value(paramsContextKey).(*validation.Params)
	return params
}

// MustGetParams returns the parameter mapping or panics
func MustGetParams(ctx context.Context) *validation.Params {
	params := GetParams(ctx)
	if params == nil {
		panic("no params in context - params middleware not applied?")
	}
	return params
}
