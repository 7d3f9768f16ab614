package middleware

import (
	"context"
	"net/http"

	"github.com/dicelobby/accounts/internal/api/apierr"
	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/services/registry"
	"github.com/dicelobby/accounts/internal/validation"
)

// Gate creates the gateway/application authorization middleware. Checks run
// in a fixed order - token presence, app_key presence, gateway resolution,
// application resolution, premium flag - and the first failure
// short-circuits, always ahead of any domain lookup in the handler.
func Gate(registryService *registry.Service, premium bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := MustGetParams(r.Context())

			if err := validation.Require(params, "token", "app_key"); err != nil {
				apierr.WriteError(w, err)
				return
			}

			gateway, err := registryService.ResolveGateway(r.Context(), params.Get("token"))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			application, err := registryService.ResolveApplication(r.Context(), params.Get("app_key"), premium)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, gatewayContextKey, gateway)
			ctx = context.WithValue(ctx, applicationContextKey, application)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetGateway returns the resolved gateway from the request context
func GetGateway(ctx context.Context) *model.Gateway {
	gateway, _ := ctx.Value(gatewayContextKey).(*model.Gateway)
	return gateway
}

// GetApplication returns the resolved application from the request context
func GetApplication(ctx context.Context) *model.Application {
	application, _ := ctx.Value(applicationContextKey).(*model.Application)
	return application
}
