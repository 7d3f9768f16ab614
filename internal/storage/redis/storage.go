package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Every entity is stored as a JSON document; secondary lookups go through
// explicit index keys.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	// Load the previous revision so stale username/email indexes can be dropped
	prev, err := s.GetAccount(ctx, account.ID)
	if err != nil && !errors.Is(err, model.ErrAccountNotFound) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, accountKey(account.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(account.Username), string(account.ID), 0)
	pipe.Set(ctx, emailIndexKey(account.Email), string(account.ID), 0)
	if prev != nil {
		if prev.Username != account.Username {
			pipe.Del(ctx, usernameIndexKey(prev.Username))
		}
		if prev.Email != account.Email {
			pipe.Del(ctx, emailIndexKey(prev.Email))
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}
	return s.GetAccount(ctx, model.AccountID(id))
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}
	return s.GetAccount(ctx, model.AccountID(id))
}

// Phone operations

func (s *Storage) SavePhone(ctx context.Context, phone *model.Phone) error {
	data, err := json.Marshal(phone)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, phoneKey(phone.ID), data, 0)
	pipe.SAdd(ctx, phonesForAccountIndexKey(phone.AccountID), string(phone.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPhone(ctx context.Context, id model.PhoneID) (*model.Phone, error) {
	data, err := s.client.Get(ctx, phoneKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPhoneNotFound
		}
		return nil, err
	}

	var phone model.Phone
	if err := json.Unmarshal(data, &phone); err != nil {
		return nil, err
	}
	return &phone, nil
}

func (s *Storage) DeletePhone(ctx context.Context, id model.PhoneID) error {
	phone, err := s.GetPhone(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPhoneNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, phoneKey(id))
	pipe.SRem(ctx, phonesForAccountIndexKey(phone.AccountID), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPhonesForAccount(ctx context.Context, accountID model.AccountID) ([]*model.Phone, error) {
	ids, err := s.client.SMembers(ctx, phonesForAccountIndexKey(accountID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	var phones []*model.Phone
	for _, id := range ids {
		phone, err := s.GetPhone(ctx, model.PhoneID(id))
		if err != nil {
			if errors.Is(err, model.ErrPhoneNotFound) {
				continue
			}
			return nil, err
		}
		phones = append(phones, phone)
	}
	return phones, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// The session document carries its own lifetime; let Redis reap it
	ttl := time.Duration(session.Expiration) * time.Second
	return s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// Group operations

func (s *Storage) SaveGroup(ctx context.Context, group *model.Group) error {
	data, err := json.Marshal(group)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, groupKey(group.ID), data, 0)
	if group.IsDefault {
		pipe.SAdd(ctx, defaultGroupsIndexKey(), string(group.ID))
	} else {
		pipe.SRem(ctx, defaultGroupsIndexKey(), string(group.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGroup(ctx context.Context, id model.GroupID) (*model.Group, error) {
	data, err := s.client.Get(ctx, groupKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGroupNotFound
		}
		return nil, err
	}

	var group model.Group
	if err := json.Unmarshal(data, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Storage) GetDefaultGroups(ctx context.Context) ([]*model.Group, error) {
	ids, err := s.client.SMembers(ctx, defaultGroupsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	var groups []*model.Group
	for _, id := range ids {
		group, err := s.GetGroup(ctx, model.GroupID(id))
		if err != nil {
			if errors.Is(err, model.ErrGroupNotFound) {
				continue
			}
			return nil, err
		}
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Slug < groups[j].Slug })
	return groups, nil
}

// Gateway/application operations

func (s *Storage) SaveGateway(ctx context.Context, gateway *model.Gateway) error {
	data, err := json.Marshal(gateway)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, gatewayKey(gateway.Token), data, 0).Err()
}

func (s *Storage) GetGatewayByToken(ctx context.Context, token string) (*model.Gateway, error) {
	data, err := s.client.Get(ctx, gatewayKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGatewayNotFound
		}
		return nil, err
	}

	var gateway model.Gateway
	if err := json.Unmarshal(data, &gateway); err != nil {
		return nil, err
	}
	return &gateway, nil
}

func (s *Storage) SaveApplication(ctx context.Context, application *model.Application) error {
	data, err := json.Marshal(application)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, applicationKey(application.Key), data, 0).Err()
}

func (s *Storage) GetApplicationByKey(ctx context.Context, key string) (*model.Application, error) {
	data, err := s.client.Get(ctx, applicationKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrApplicationNotFound
		}
		return nil, err
	}

	var application model.Application
	if err := json.Unmarshal(data, &application); err != nil {
		return nil, err
	}
	return &application, nil
}
