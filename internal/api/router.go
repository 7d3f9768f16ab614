package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dicelobby/accounts/internal/api/handler"
	apimiddleware "github.com/dicelobby/accounts/internal/api/middleware"
	"github.com/dicelobby/accounts/internal/middleware"
	"github.com/dicelobby/accounts/internal/services/account"
	"github.com/dicelobby/accounts/internal/services/registry"
	"github.com/dicelobby/accounts/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AccountService  *account.Service
	SessionService  *session.Service
	RegistryService *registry.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AccountService)
	phoneHandler := handler.NewPhoneHandler(cfg.AccountService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionService)

	// Create middleware
	paramsMiddleware := apimiddleware.Params()
	gate := apimiddleware.Gate(cfg.RegistryService, false)
	premiumGate := apimiddleware.Gate(cfg.RegistryService, true)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, panicHandler)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Account routes. Fixed paths are registered before the /{id} wildcards.
	// Account creation is the only premium-gated account route.
	accounts := r.PathPrefix("/accounts").Subrouter()
	accounts.Use(paramsMiddleware)
	accounts.Handle("", premiumGate(http.HandlerFunc(accountHandler.Create))).Methods(http.MethodPost)
	accounts.Handle("/own", gate(http.HandlerFunc(accountHandler.GetOwn))).Methods(http.MethodGet)
	accounts.Handle("/own", gate(http.HandlerFunc(accountHandler.UpdateOwn))).Methods(http.MethodPut)
	accounts.Handle("/own/phones", gate(http.HandlerFunc(phoneHandler.Add))).Methods(http.MethodPatch)
	accounts.Handle("/own/phones/{phone_id}", gate(http.HandlerFunc(phoneHandler.Delete))).Methods(http.MethodDelete)
	accounts.Handle("/{id}", gate(http.HandlerFunc(accountHandler.Get))).Methods(http.MethodGet)
	accounts.Handle("/{id}", gate(http.HandlerFunc(accountHandler.Update))).Methods(http.MethodPut)

	// Session routes (all premium-gated)
	sessions := r.PathPrefix("/sessions").Subrouter()
	sessions.Use(paramsMiddleware)
	sessions.Handle("", premiumGate(http.HandlerFunc(sessionHandler.Create))).Methods(http.MethodPost)
	sessions.Handle("/{id}", premiumGate(http.HandlerFunc(sessionHandler.Get))).Methods(http.MethodGet)

	// Health check endpoint (no gate)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"status":500,"field":"server","error":"internal_server_error"}`))
}
