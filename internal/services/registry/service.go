package registry

import (
	"context"
	"errors"

	"github.com/dicelobby/accounts/internal/dependencies/random"
	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/storage"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Service resolves gateway tokens and application keys. Gateways and
// applications are administered by the upstream platform; this service only
// reads them, plus a one-shot idempotent seeding hook for bootstrap.
type Service struct {
	storage storage.Storage
	random  random.Random
}

// New creates a new registry service
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
	}
}

// ResolveGateway maps a gateway token to its record
func (s *Service) ResolveGateway(ctx context.Context, token string) (*model.Gateway, error) {
	gateway, err := s.storage.GetGatewayByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrGatewayNotFound) {
			return nil, model.NewFieldError("token", model.CodeUnknown)
		}
		return nil, err
	}
	return gateway, nil
}

// ResolveApplication maps an application key to its record. When premium is
// true, a non-premium application is rejected.
func (s *Service) ResolveApplication(ctx context.Context, key string, premium bool) (*model.Application, error) {
	application, err := s.storage.GetApplicationByKey(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrApplicationNotFound) {
			return nil, model.NewFieldError("app_key", model.CodeUnknown)
		}
		return nil, err
	}
	if premium && !application.Premium {
		return nil, model.NewFieldError("app_key", model.CodeForbidden)
	}
	return application, nil
}

// Seed registers a gateway token and an application key if they are not
// already known, so a fresh deployment can authorize its own edge. Existing
// records are left untouched.
func (s *Service) Seed(ctx context.Context, gatewayToken, appKey string, premium bool) error {
	if gatewayToken != "" {
		_, err := s.storage.GetGatewayByToken(ctx, gatewayToken)
		if errors.Is(err, model.ErrGatewayNotFound) {
			err = s.storage.SaveGateway(ctx, &model.Gateway{
				ID:     "gw_" + s.random.String(24, idAlphabet),
				Token:  gatewayToken,
				Active: true,
			})
		}
		if err != nil {
			return err
		}
	}

	if appKey != "" {
		_, err := s.storage.GetApplicationByKey(ctx, appKey)
		if errors.Is(err, model.ErrApplicationNotFound) {
			err = s.storage.SaveApplication(ctx, &model.Application{
				ID:      "app_" + s.random.String(24, idAlphabet),
				Name:    "bootstrap",
				Key:     appKey,
				Premium: premium,
			})
		}
		if err != nil {
			return err
		}
	}

	return nil
}
