package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	emailIndex    map[string]model.AccountID
	phones        map[model.PhoneID]*model.Phone
	sessions      map[string]*model.Session
	groups        map[model.GroupID]*model.Group
	gateways      map[string]*model.Gateway
	applications  map[string]*model.Application
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.AccountID]*model.Account),
		usernameIndex: make(map[string]model.AccountID),
		emailIndex:    make(map[string]model.AccountID),
		phones:        make(map[model.PhoneID]*model.Phone),
		sessions:      make(map[string]*model.Session),
		groups:        make(map[model.GroupID]*model.Group),
		gateways:      make(map[string]*model.Gateway),
		applications:  make(map[string]*model.Application),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop stale index entries when username or email changed
	if prev, ok := s.accounts[account.ID]; ok {
		if prev.Username != account.Username {
			delete(s.usernameIndex, prev.Username)
		}
		if prev.Email != account.Email {
			delete(s.emailIndex, prev.Email)
		}
	}

	s.accounts[account.ID] = account
	s.usernameIndex[account.Username] = account.ID
	s.emailIndex[account.Email] = account.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

// Phone operations

func (s *Storage) SavePhone(ctx context.Context, phone *model.Phone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phones[phone.ID] = phone
	return nil
}

func (s *Storage) GetPhone(ctx context.Context, id model.PhoneID) (*model.Phone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phone, ok := s.phones[id]
	if !ok {
		return nil, model.ErrPhoneNotFound
	}
	return phone, nil
}

func (s *Storage) DeletePhone(ctx context.Context, id model.PhoneID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.phones, id)
	return nil
}

func (s *Storage) GetPhonesForAccount(ctx context.Context, accountID model.AccountID) ([]*model.Phone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var phones []*model.Phone
	for _, phone := range s.phones {
		if phone.AccountID == accountID {
			phones = append(phones, phone)
		}
	}
	sort.Slice(phones, func(i, j int) bool { return phones[i].ID < phones[j].ID })
	return phones, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Group operations

func (s *Storage) SaveGroup(ctx context.Context, group *model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.ID] = group
	return nil
}

func (s *Storage) GetGroup(ctx context.Context, id model.GroupID) (*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[id]
	if !ok {
		return nil, model.ErrGroupNotFound
	}
	return group, nil
}

func (s *Storage) GetDefaultGroups(ctx context.Context) ([]*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var groups []*model.Group
	for _, group := range s.groups {
		if group.IsDefault {
			groups = append(groups, group)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Slug < groups[j].Slug })
	return groups, nil
}

// Gateway/application operations

func (s *Storage) SaveGateway(ctx context.Context, gateway *model.Gateway) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gateways[gateway.Token] = gateway
	return nil
}

func (s *Storage) GetGatewayByToken(ctx context.Context, token string) (*model.Gateway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gateway, ok := s.gateways[token]
	if !ok {
		return nil, model.ErrGatewayNotFound
	}
	return gateway, nil
}

func (s *Storage) SaveApplication(ctx context.Context, application *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[application.Key] = application
	return nil
}

func (s *Storage) GetApplicationByKey(ctx context.Context, key string) (*model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	application, ok := s.applications[key]
	if !ok {
		return nil, model.ErrApplicationNotFound
	}
	return application, nil
}
