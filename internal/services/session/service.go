package session

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/dicelobby/accounts/internal/dependencies/clock"
	"github.com/dicelobby/accounts/internal/dependencies/random"
	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/storage"
)

// tokenAlphabet is the alphabet used for session tokens
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// tokenLength is the length of generated session tokens
const tokenLength = 43

// Service authenticates credentials and issues session tokens
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
}

// New creates a new session service
func New(storage storage.Storage, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Login authenticates a username/password pair and issues a session.
// expiration is the requested lifetime in seconds; zero or negative selects
// the default policy value.
func (s *Service) Login(ctx context.Context, username, password string, expiration int) (*model.Session, error) {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.NewFieldError("username", model.CodeUnknown)
		}
		return nil, err
	}

	// bcrypt comparison is constant-time on the hash
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewFieldError("password", model.CodeWrongPassword)
	}

	if expiration <= 0 {
		expiration = model.DefaultSessionExpiration
	}

	session := &model.Session{
		Token:      s.random.String(tokenLength, tokenAlphabet),
		AccountID:  account.ID,
		Expiration: expiration,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Lookup returns the session for a token. Expired sessions are
// indistinguishable from unknown ones.
func (s *Service) Lookup(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, model.NewFieldError("session_id", model.CodeUnknown)
		}
		return nil, err
	}
	if session.Expired(s.clock.Now()) {
		return nil, model.NewFieldError("session_id", model.CodeUnknown)
	}
	return session, nil
}
