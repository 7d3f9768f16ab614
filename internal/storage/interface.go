package storage

import (
	"context"

	"github.com/dicelobby/accounts/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)

	// Phone operations
	SavePhone(ctx context.Context, phone *model.Phone) error
	GetPhone(ctx context.Context, id model.PhoneID) (*model.Phone, error)
	DeletePhone(ctx context.Context, id model.PhoneID) error
	GetPhonesForAccount(ctx context.Context, accountID model.AccountID) ([]*model.Phone, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Permission group operations (groups are administered externally)
	SaveGroup(ctx context.Context, group *model.Group) error
	GetGroup(ctx context.Context, id model.GroupID) (*model.Group, error)
	GetDefaultGroups(ctx context.Context) ([]*model.Group, error)

	// Gateway/application registry operations
	SaveGateway(ctx context.Context, gateway *model.Gateway) error
	GetGatewayByToken(ctx context.Context, token string) (*model.Gateway, error)
	SaveApplication(ctx context.Context, application *model.Application) error
	GetApplicationByKey(ctx context.Context, key string) (*model.Application, error)
}
