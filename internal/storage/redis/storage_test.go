package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dicelobby/accounts/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccount() {
	birthdate := time.Date(1931, 10, 1, 0, 0, 0, 0, time.UTC)
	account := &model.Account{
		ID:        "acc_1",
		Username:  "babar_leroi",
		Email:     "babar@celesteville.example",
		Language:  model.LanguageFrench,
		Gender:    model.GenderNeutral,
		Birthdate: &birthdate,
		GroupIDs:  []model.GroupID{"grp_members"},
	}

	err := s.storage.SaveAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "acc_1")
	s.Require().NoError(err)
	s.Equal(account.Username, retrieved.Username)
	s.Equal(account.GroupIDs, retrieved.GroupIDs)
	s.Require().NotNil(retrieved.Birthdate)
	s.True(birthdate.Equal(*retrieved.Birthdate))
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestGetAccountByUsername() {
	account := &model.Account{ID: "acc_1", Username: "babar_leroi", Email: "b@c.example"}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	retrieved, err := s.storage.GetAccountByUsername(s.ctx, "babar_leroi")
	s.Require().NoError(err)
	s.Equal(model.AccountID("acc_1"), retrieved.ID)

	_, err = s.storage.GetAccountByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestGetAccountByEmail() {
	account := &model.Account{ID: "acc_1", Username: "babar_leroi", Email: "b@c.example"}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "b@c.example")
	s.Require().NoError(err)
	s.Equal(model.AccountID("acc_1"), retrieved.ID)
}

func (s *StorageSuite) TestResaveDropsStaleIndexes() {
	account := &model.Account{ID: "acc_1", Username: "babar_leroi", Email: "b@c.example"}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	renamed := &model.Account{ID: "acc_1", Username: "arthur_lepetit", Email: "a@c.example"}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, renamed))

	_, err := s.storage.GetAccountByUsername(s.ctx, "babar_leroi")
	s.ErrorIs(err, model.ErrAccountNotFound)
	_, err = s.storage.GetAccountByEmail(s.ctx, "b@c.example")
	s.ErrorIs(err, model.ErrAccountNotFound)

	retrieved, err := s.storage.GetAccountByUsername(s.ctx, "arthur_lepetit")
	s.Require().NoError(err)
	s.Equal(model.AccountID("acc_1"), retrieved.ID)
}

// Phone tests

func (s *StorageSuite) TestSaveAndGetPhone() {
	phone := &model.Phone{
		ID:        "phone_1",
		AccountID: "acc_1",
		Number:    "+33612345678",
		Privacy:   model.PrivacyPrivate,
	}

	s.Require().NoError(s.storage.SavePhone(s.ctx, phone))

	retrieved, err := s.storage.GetPhone(s.ctx, "phone_1")
	s.Require().NoError(err)
	s.Equal(phone.Number, retrieved.Number)
	s.Equal(model.PrivacyPrivate, retrieved.Privacy)
}

func (s *StorageSuite) TestDeletePhoneRemovesIndexEntry() {
	phone := &model.Phone{ID: "phone_1", AccountID: "acc_1", Number: "+33612345678"}
	s.Require().NoError(s.storage.SavePhone(s.ctx, phone))

	s.Require().NoError(s.storage.DeletePhone(s.ctx, "phone_1"))

	_, err := s.storage.GetPhone(s.ctx, "phone_1")
	s.ErrorIs(err, model.ErrPhoneNotFound)

	phones, err := s.storage.GetPhonesForAccount(s.ctx, "acc_1")
	s.Require().NoError(err)
	s.Empty(phones)
}

func (s *StorageSuite) TestDeletePhoneMissingIsNoop() {
	s.NoError(s.storage.DeletePhone(s.ctx, "phone_missing"))
}

func (s *StorageSuite) TestGetPhonesForAccount() {
	s.Require().NoError(s.storage.SavePhone(s.ctx, &model.Phone{ID: "phone_2", AccountID: "acc_1", Number: "2"}))
	s.Require().NoError(s.storage.SavePhone(s.ctx, &model.Phone{ID: "phone_1", AccountID: "acc_1", Number: "1"}))
	s.Require().NoError(s.storage.SavePhone(s.ctx, &model.Phone{ID: "phone_3", AccountID: "acc_2", Number: "3"}))

	phones, err := s.storage.GetPhonesForAccount(s.ctx, "acc_1")
	s.Require().NoError(err)
	s.Require().Len(phones, 2)
	s.Equal(model.PhoneID("phone_1"), phones[0].ID)
	s.Equal(model.PhoneID("phone_2"), phones[1].ID)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.Session{
		Token:      "tok_1",
		AccountID:  "acc_1",
		Expiration: 3600,
		CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "tok_1")
	s.Require().NoError(err)
	s.Equal(session.AccountID, retrieved.AccountID)
	s.Equal(3600, retrieved.Expiration)
}

func (s *StorageSuite) TestSessionExpiresViaTTL() {
	session := &model.Session{
		Token:      "tok_1",
		AccountID:  "acc_1",
		Expiration: 60,
		CreatedAt:  time.Now(),
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.mini.FastForward(61 * time.Second)

	_, err := s.storage.GetSession(s.ctx, "tok_1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	session := &model.Session{Token: "tok_1", AccountID: "acc_1", Expiration: 3600}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "tok_1"))

	_, err := s.storage.GetSession(s.ctx, "tok_1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Group tests

func (s *StorageSuite) TestSaveAndGetGroup() {
	group := &model.Group{
		ID:        "grp_members",
		Slug:      "members",
		IsDefault: true,
		Rights: []model.Right{
			{ID: "right_1", Slug: "read", CategorySlug: "members"},
		},
	}

	s.Require().NoError(s.storage.SaveGroup(s.ctx, group))

	retrieved, err := s.storage.GetGroup(s.ctx, "grp_members")
	s.Require().NoError(err)
	s.Equal("members", retrieved.Slug)
	s.Require().Len(retrieved.Rights, 1)
	s.Equal("read", retrieved.Rights[0].Slug)
}

func (s *StorageSuite) TestGetDefaultGroups() {
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_z", Slug: "zeta", IsDefault: true}))
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_a", Slug: "alpha", IsDefault: true}))
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_x", Slug: "xi", IsDefault: false}))

	groups, err := s.storage.GetDefaultGroups(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal("alpha", groups[0].Slug)
	s.Equal("zeta", groups[1].Slug)
}

func (s *StorageSuite) TestResaveGroupTogglesDefaultMembership() {
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_a", Slug: "alpha", IsDefault: true}))
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_a", Slug: "alpha", IsDefault: false}))

	groups, err := s.storage.GetDefaultGroups(s.ctx)
	s.Require().NoError(err)
	s.Empty(groups)
}

// Gateway/application tests

func (s *StorageSuite) TestSaveAndGetGateway() {
	gateway := &model.Gateway{ID: "gw_1", Token: "edge-token", Active: true}
	s.Require().NoError(s.storage.SaveGateway(s.ctx, gateway))

	retrieved, err := s.storage.GetGatewayByToken(s.ctx, "edge-token")
	s.Require().NoError(err)
	s.Equal("gw_1", retrieved.ID)

	_, err = s.storage.GetGatewayByToken(s.ctx, "nope")
	s.ErrorIs(err, model.ErrGatewayNotFound)
}

func (s *StorageSuite) TestSaveAndGetApplication() {
	application := &model.Application{ID: "app_1", Name: "dice", Key: "dice-key", Premium: true}
	s.Require().NoError(s.storage.SaveApplication(s.ctx, application))

	retrieved, err := s.storage.GetApplicationByKey(s.ctx, "dice-key")
	s.Require().NoError(err)
	s.True(retrieved.Premium)

	_, err = s.storage.GetApplicationByKey(s.ctx, "nope")
	s.ErrorIs(err, model.ErrApplicationNotFound)
}
