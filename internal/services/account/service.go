package account

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dicelobby/accounts/internal/dependencies/clock"
	"github.com/dicelobby/accounts/internal/dependencies/random"
	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/storage"
	"github.com/dicelobby/accounts/internal/validation"
)

// idAlphabet is the alphabet used for generated entity identifiers
const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// idLength is the length of generated entity identifiers
const idLength = 24

// Editable account fields. Anything else in the request parameters is
// silently ignored.
var allowedFields = []string{
	"username", "password", "password_confirmation",
	"email", "firstname", "lastname", "birthdate",
	"language", "gender",
}

// Service handles account creation, profile updates, group reassignment
// and phone sub-records
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
}

// New creates a new account service
func New(storage storage.Storage, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Create validates the allow-listed fields, hashes the password, attaches
// every default permission group and persists the new account. Nothing is
// written until every check has passed.
func (s *Service) Create(ctx context.Context, params *validation.Params) (*model.Account, error) {
	now := s.clock.Now()
	account := &model.Account{
		ID:        model.AccountID("acc_" + s.random.String(idLength, idAlphabet)),
		Language:  model.DefaultLanguage,
		Gender:    model.DefaultGender,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.applyFields(ctx, account, params); err != nil {
		return nil, err
	}

	defaults, err := s.storage.GetDefaultGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, group := range defaults {
		account.GroupIDs = append(account.GroupIDs, group.ID)
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Get returns the account with the given id
func (s *Service) Get(ctx context.Context, id model.AccountID) (*model.Account, error) {
	account, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.NewFieldError("account_id", model.CodeUnknown)
		}
		return nil, err
	}
	return account, nil
}

// GetOwn resolves a session token to its owning account
func (s *Service) GetOwn(ctx context.Context, sessionToken string) (*model.Account, error) {
	return s.resolveSession(ctx, sessionToken)
}

// UpdateOwn applies the allow-listed present fields to the session's own
// account. Uniqueness probes exclude the account itself so re-submitting an
// unchanged username or email is not a violation.
func (s *Service) UpdateOwn(ctx context.Context, sessionToken string, params *validation.Params) (*model.Account, error) {
	account, err := s.resolveSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	updated := *account
	if err := s.applyFields(ctx, &updated, params); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveAccount(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ReassignGroups replaces the account's group set. Every supplied group id
// must resolve; otherwise nothing changes (all-or-nothing).
func (s *Service) ReassignGroups(ctx context.Context, id model.AccountID, groupIDs []string) (*model.Account, error) {
	account, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.NewFieldError("account_id", model.CodeUnknown)
		}
		return nil, err
	}

	groups := make([]model.GroupID, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		if _, err := s.storage.GetGroup(ctx, model.GroupID(groupID)); err != nil {
			if errors.Is(err, model.ErrGroupNotFound) {
				return nil, model.NewFieldError("group_id", model.CodeUnknown)
			}
			return nil, err
		}
		groups = append(groups, model.GroupID(groupID))
	}

	account.GroupIDs = groups
	account.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// AddPhone creates a phone record under the session's own account
func (s *Service) AddPhone(ctx context.Context, sessionToken, number string, privacy model.Privacy) (*model.Phone, error) {
	account, err := s.resolveSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	if !model.ValidPrivacy(privacy) {
		return nil, model.NewFieldError("privacy", model.CodeWrongValue)
	}

	phone := &model.Phone{
		ID:        model.PhoneID("phone_" + s.random.String(idLength, idAlphabet)),
		AccountID: account.ID,
		Number:    number,
		Privacy:   privacy,
	}

	if err := s.storage.SavePhone(ctx, phone); err != nil {
		return nil, err
	}
	return phone, nil
}

// DeletePhone removes a phone record from the session's own account. Phones
// owned by other accounts are indistinguishable from nonexistent ones.
func (s *Service) DeletePhone(ctx context.Context, sessionToken string, phoneID model.PhoneID) error {
	account, err := s.resolveSession(ctx, sessionToken)
	if err != nil {
		return err
	}

	phone, err := s.storage.GetPhone(ctx, phoneID)
	if err != nil {
		if errors.Is(err, model.ErrPhoneNotFound) {
			return model.NewFieldError("phone_id", model.CodeUnknown)
		}
		return err
	}
	if phone.AccountID != account.ID {
		return model.NewFieldError("phone_id", model.CodeUnknown)
	}

	return s.storage.DeletePhone(ctx, phoneID)
}

// Phones lists the phone records of the session's own account
func (s *Service) Phones(ctx context.Context, sessionToken string) ([]*model.Phone, error) {
	account, err := s.resolveSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	return s.storage.GetPhonesForAccount(ctx, account.ID)
}

// Groups resolves the account's group references in attachment order
func (s *Service) Groups(ctx context.Context, account *model.Account) ([]*model.Group, error) {
	groups := make([]*model.Group, 0, len(account.GroupIDs))
	for _, id := range account.GroupIDs {
		group, err := s.storage.GetGroup(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrGroupNotFound) {
				continue
			}
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// resolveSession maps a session token to its live account, enforcing session
// expiration
func (s *Service) resolveSession(ctx context.Context, token string) (*model.Account, error) {
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

	account, err := s.storage.GetAccount(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.NewFieldError("session_id", model.CodeUnknown)
		}
		return nil, err
	}
	return account, nil
}

// applyFields copies the allow-listed present parameters onto the account,
// running domain validation on each. The account is only mutated through the
// local copy the caller hands in, so a failure leaves stored state untouched.
func (s *Service) applyFields(ctx context.Context, account *model.Account, params *validation.Params) error {
	for _, field := range allowedFields {
		if !params.Has(field) {
			continue
		}
		value := params.Get(field)

		switch field {
		case "username":
			if err := validation.ValidUsername(value); err != nil {
				return err
			}
			if err := s.checkUnique(ctx, "username", value, account.ID); err != nil {
				return err
			}
			account.Username = value
		case "email":
			if err := validation.ValidEmail(value); err != nil {
				return err
			}
			if err := s.checkUnique(ctx, "email", value, account.ID); err != nil {
				return err
			}
			account.Email = value
		case "password":
			if err := validation.ValidConfirmation(value, params.Get("password_confirmation")); err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			account.PasswordHash = string(hash)
		case "firstname":
			account.Firstname = value
		case "lastname":
			account.Lastname = value
		case "birthdate":
			birthdate, err := time.Parse(time.RFC3339, value)
			if err != nil {
				birthdate, err = time.Parse("2006-01-02", value)
			}
			if err != nil {
				return model.NewFieldError("birthdate", model.CodeWrongValue)
			}
			account.Birthdate = &birthdate
		case "language":
			if !model.ValidLanguage(model.Language(value)) {
				return model.NewFieldError("language", model.CodeWrongValue)
			}
			account.Language = model.Language(value)
		case "gender":
			if !model.ValidGender(model.Gender(value)) {
				return model.NewFieldError("gender", model.CodeWrongValue)
			}
			account.Gender = model.Gender(value)
		}
	}
	return nil
}

// checkUnique probes the relevant index for another account holding the value
func (s *Service) checkUnique(ctx context.Context, field, value string, self model.AccountID) error {
	var other *model.Account
	var err error
	switch field {
	case "username":
		other, err = s.storage.GetAccountByUsername(ctx, value)
	case "email":
		other, err = s.storage.GetAccountByEmail(ctx, value)
	}

	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil
		}
		return err
	}
	if other.ID == self {
		return nil
	}
	return model.NewFieldError(field, model.CodeUniq)
}
