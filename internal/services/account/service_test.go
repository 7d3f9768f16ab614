package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/dicelobby/accounts/internal/dependencies/mocks"
	"github.com/dicelobby/accounts/internal/dependencies/random"
	"github.com/dicelobby/accounts/internal/model"
	"github.com/dicelobby/accounts/internal/storage/memory"
	"github.com/dicelobby/accounts/internal/validation"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, random.New())
	s.ctx = context.Background()
}

func (s *ServiceSuite) assertFieldError(err error, field, code string) {
	s.T().Helper()
	var fieldErr *model.FieldError
	s.Require().ErrorAs(err, &fieldErr)
	s.Equal(field, fieldErr.Field)
	s.Equal(code, fieldErr.Code)
}

func signupParams() *validation.Params {
	p := validation.NewParams()
	p.Set("username", "babar_leroi")
	p.Set("password", "celestevillage")
	p.Set("password_confirmation", "celestevillage")
	p.Set("email", "babar@celesteville.example")
	return p
}

func (s *ServiceSuite) seedDefaultGroup(id, slug string) *model.Group {
	group := &model.Group{
		ID:        model.GroupID(id),
		Slug:      slug,
		IsDefault: true,
		Rights: []model.Right{
			{ID: "right_1", Slug: "read", CategorySlug: slug},
		},
	}
	s.Require().NoError(s.storage.SaveGroup(s.ctx, group))
	return group
}

func (s *ServiceSuite) openSession(accountID model.AccountID, token string) {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{
		Token:      token,
		AccountID:  accountID,
		Expiration: model.DefaultSessionExpiration,
		CreatedAt:  s.clock.Now(),
	}))
}

// Create tests

func (s *ServiceSuite) TestCreateSucceeds() {
	account, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	s.True(strings.HasPrefix(string(account.ID), "acc_"))
	s.Equal("babar_leroi", account.Username)
	s.Equal("babar@celesteville.example", account.Email)
	s.Equal(model.DefaultLanguage, account.Language)
	s.Equal(model.DefaultGender, account.Gender)
	s.Equal(s.clock.Now(), account.CreatedAt)
}

func (s *ServiceSuite) TestCreateHashesPassword() {
	account, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	s.NotEqual("celestevillage", account.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("celestevillage")))
}

func (s *ServiceSuite) TestCreatePersistsAccount() {
	account, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	stored, err := s.storage.GetAccount(s.ctx, account.ID)
	s.Require().NoError(err)
	s.Equal("babar_leroi", stored.Username)
}

func (s *ServiceSuite) TestCreateAttachesDefaultGroups() {
	members := s.seedDefaultGroup("grp_members", "members")
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{
		ID: "grp_admins", Slug: "admins", IsDefault: false,
	}))

	account, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	s.Equal([]model.GroupID{members.ID}, account.GroupIDs)
}

func (s *ServiceSuite) TestCreateRejectsShortUsername() {
	p := signupParams()
	p.Set("username", "babar")

	_, err := s.service.Create(s.ctx, p)
	s.assertFieldError(err, "username", model.CodeMinLength)
}

func (s *ServiceSuite) TestCreateRejectsMalformedEmail() {
	p := signupParams()
	p.Set("email", "not-an-email")

	_, err := s.service.Create(s.ctx, p)
	s.assertFieldError(err, "email", model.CodePattern)
}

func (s *ServiceSuite) TestCreateRejectsMismatchedConfirmation() {
	p := signupParams()
	p.Set("password_confirmation", "somethingelse")

	_, err := s.service.Create(s.ctx, p)
	s.assertFieldError(err, "password_confirmation", model.CodeConfirmation)
}

func (s *ServiceSuite) TestCreateRejectsDuplicateUsername() {
	_, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	p := signupParams()
	p.Set("email", "other@celesteville.example")
	_, err = s.service.Create(s.ctx, p)
	s.assertFieldError(err, "username", model.CodeUniq)
}

func (s *ServiceSuite) TestCreateRejectsDuplicateEmail() {
	_, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	p := signupParams()
	p.Set("username", "cornelius_1")
	_, err = s.service.Create(s.ctx, p)
	s.assertFieldError(err, "email", model.CodeUniq)
}

func (s *ServiceSuite) TestCreateRejectsUnknownLanguage() {
	p := signupParams()
	p.Set("language", "de_DE")

	_, err := s.service.Create(s.ctx, p)
	s.assertFieldError(err, "language", model.CodeWrongValue)
}

func (s *ServiceSuite) TestCreateRejectsUnknownGender() {
	p := signupParams()
	p.Set("gender", "other")

	_, err := s.service.Create(s.ctx, p)
	s.assertFieldError(err, "gender", model.CodeWrongValue)
}

func (s *ServiceSuite) TestCreateAcceptsOptionalFields() {
	p := signupParams()
	p.Set("firstname", "Babar")
	p.Set("lastname", "de Celesteville")
	p.Set("language", "en_GB")
	p.Set("gender", "male")
	p.Set("birthdate", "1931-10-01")

	account, err := s.service.Create(s.ctx, p)
	s.Require().NoError(err)

	s.Equal("Babar", account.Firstname)
	s.Equal(model.LanguageEnglish, account.Language)
	s.Equal(model.GenderMale, account.Gender)
	s.Require().NotNil(account.Birthdate)
	s.Equal(1931, account.Birthdate.Year())
}

func (s *ServiceSuite) TestCreateRejectsUnparseableBirthdate() {
	p := signupParams()
	p.Set("birthdate", "the first of october")

	_, err := s.service.Create(s.ctx, p)
	s.assertFieldError(err, "birthdate", model.CodeWrongValue)
}

func (s *ServiceSuite) TestCreateFailureWritesNothing() {
	p := signupParams()
	p.Set("gender", "other")

	_, err := s.service.Create(s.ctx, p)
	s.Require().Error(err)

	_, err = s.storage.GetAccountByUsername(s.ctx, "babar_leroi")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestCreateIgnoresUnlistedFields() {
	p := signupParams()
	p.Set("id", "acc_forged")
	p.Set("admin", "true")

	account, err := s.service.Create(s.ctx, p)
	s.Require().NoError(err)
	s.NotEqual(model.AccountID("acc_forged"), account.ID)
}

// Get / GetOwn tests

func (s *ServiceSuite) TestGetReturnsAccount() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	account, err := s.service.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.Username, account.Username)
}

func (s *ServiceSuite) TestGetUnknownAccount() {
	_, err := s.service.Get(s.ctx, "acc_missing")
	s.assertFieldError(err, "account_id", model.CodeUnknown)
}

func (s *ServiceSuite) TestGetOwnResolvesSession() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	account, err := s.service.GetOwn(s.ctx, "tok_own")
	s.Require().NoError(err)
	s.Equal(created.ID, account.ID)
}

func (s *ServiceSuite) TestGetOwnUnknownSession() {
	_, err := s.service.GetOwn(s.ctx, "tok_missing")
	s.assertFieldError(err, "session_id", model.CodeUnknown)
}

func (s *ServiceSuite) TestGetOwnExpiredSession() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	s.clock.Advance(2 * time.Hour)

	_, err = s.service.GetOwn(s.ctx, "tok_own")
	s.assertFieldError(err, "session_id", model.CodeUnknown)
}

// UpdateOwn tests

func (s *ServiceSuite) TestUpdateOwnChangesPresentFields() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	p := validation.NewParams()
	p.Set("firstname", "Arthur")
	p.Set("language", "en_GB")

	updated, err := s.service.UpdateOwn(s.ctx, "tok_own", p)
	s.Require().NoError(err)
	s.Equal("Arthur", updated.Firstname)
	s.Equal(model.LanguageEnglish, updated.Language)
	s.Equal(created.Username, updated.Username)
}

func (s *ServiceSuite) TestUpdateOwnAllowsResubmittingOwnUsername() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	p := validation.NewParams()
	p.Set("username", created.Username)

	_, err = s.service.UpdateOwn(s.ctx, "tok_own", p)
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdateOwnRejectsTakenEmail() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	other := signupParams()
	other.Set("username", "cornelius_1")
	other.Set("email", "cornelius@celesteville.example")
	_, err = s.service.Create(s.ctx, other)
	s.Require().NoError(err)

	s.openSession(created.ID, "tok_own")
	p := validation.NewParams()
	p.Set("email", "cornelius@celesteville.example")

	_, err = s.service.UpdateOwn(s.ctx, "tok_own", p)
	s.assertFieldError(err, "email", model.CodeUniq)
}

func (s *ServiceSuite) TestUpdateOwnFailureLeavesAccountUntouched() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	p := validation.NewParams()
	p.Set("firstname", "Arthur")
	p.Set("language", "de_DE")

	_, err = s.service.UpdateOwn(s.ctx, "tok_own", p)
	s.Require().Error(err)

	stored, err := s.storage.GetAccount(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Empty(stored.Firstname)
	s.Equal(model.DefaultLanguage, stored.Language)
}

func (s *ServiceSuite) TestUpdateOwnRehashesPassword() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	p := validation.NewParams()
	p.Set("password", "newpassword")
	p.Set("password_confirmation", "newpassword")

	updated, err := s.service.UpdateOwn(s.ctx, "tok_own", p)
	s.Require().NoError(err)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword")))
}

// ReassignGroups tests

func (s *ServiceSuite) TestReassignGroupsReplacesSet() {
	s.seedDefaultGroup("grp_members", "members")
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_admins", Slug: "admins"}))

	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	updated, err := s.service.ReassignGroups(s.ctx, created.ID, []string{"grp_admins"})
	s.Require().NoError(err)
	s.Equal([]model.GroupID{"grp_admins"}, updated.GroupIDs)
}

func (s *ServiceSuite) TestReassignGroupsUnknownAccount() {
	_, err := s.service.ReassignGroups(s.ctx, "acc_missing", []string{"grp_members"})
	s.assertFieldError(err, "account_id", model.CodeUnknown)
}

func (s *ServiceSuite) TestReassignGroupsIsAllOrNothing() {
	members := s.seedDefaultGroup("grp_members", "members")

	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	_, err = s.service.ReassignGroups(s.ctx, created.ID, []string{string(members.ID), "grp_missing"})
	s.assertFieldError(err, "group_id", model.CodeUnknown)

	stored, err := s.storage.GetAccount(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal([]model.GroupID{members.ID}, stored.GroupIDs)
}

func (s *ServiceSuite) TestReassignGroupsToEmpty() {
	s.seedDefaultGroup("grp_members", "members")

	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)

	updated, err := s.service.ReassignGroups(s.ctx, created.ID, nil)
	s.Require().NoError(err)
	s.Empty(updated.GroupIDs)
}

// Phone tests

func (s *ServiceSuite) TestAddPhoneSucceeds() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	phone, err := s.service.AddPhone(s.ctx, "tok_own", "+33612345678", model.PrivacyPrivate)
	s.Require().NoError(err)

	s.True(strings.HasPrefix(string(phone.ID), "phone_"))
	s.Equal(created.ID, phone.AccountID)
	s.Equal("+33612345678", phone.Number)
}

func (s *ServiceSuite) TestAddPhoneRejectsUnknownPrivacy() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	_, err = s.service.AddPhone(s.ctx, "tok_own", "+33612345678", "friends")
	s.assertFieldError(err, "privacy", model.CodeWrongValue)
}

func (s *ServiceSuite) TestDeletePhoneSucceeds() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	phone, err := s.service.AddPhone(s.ctx, "tok_own", "+33612345678", model.PrivacyPublic)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeletePhone(s.ctx, "tok_own", phone.ID))

	_, err = s.storage.GetPhone(s.ctx, phone.ID)
	s.ErrorIs(err, model.ErrPhoneNotFound)
}

func (s *ServiceSuite) TestDeletePhoneUnknownID() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	err = s.service.DeletePhone(s.ctx, "tok_own", "phone_missing")
	s.assertFieldError(err, "phone_id", model.CodeUnknown)
}

func (s *ServiceSuite) TestDeletePhoneOwnedByAnotherAccount() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	other := signupParams()
	other.Set("username", "cornelius_1")
	other.Set("email", "cornelius@celesteville.example")
	otherAccount, err := s.service.Create(s.ctx, other)
	s.Require().NoError(err)
	s.openSession(otherAccount.ID, "tok_other")

	phone, err := s.service.AddPhone(s.ctx, "tok_other", "+33698765432", model.PrivacyPrivate)
	s.Require().NoError(err)

	// The owner of tok_own must not be able to tell this phone exists
	err = s.service.DeletePhone(s.ctx, "tok_own", phone.ID)
	s.assertFieldError(err, "phone_id", model.CodeUnknown)

	_, err = s.storage.GetPhone(s.ctx, phone.ID)
	s.NoError(err)
}

func (s *ServiceSuite) TestPhonesListsOwnRecords() {
	created, err := s.service.Create(s.ctx, signupParams())
	s.Require().NoError(err)
	s.openSession(created.ID, "tok_own")

	_, err = s.service.AddPhone(s.ctx, "tok_own", "+33612345678", model.PrivacyPrivate)
	s.Require().NoError(err)
	_, err = s.service.AddPhone(s.ctx, "tok_own", "+33698765432", model.PrivacyPublic)
	s.Require().NoError(err)

	phones, err := s.service.Phones(s.ctx, "tok_own")
	s.Require().NoError(err)
	s.Len(phones, 2)
}

// Groups tests

func (s *ServiceSuite) TestGroupsResolvesInAttachmentOrder() {
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_b", Slug: "beta"}))
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_a", Slug: "alpha"}))

	account := &model.Account{GroupIDs: []model.GroupID{"grp_b", "grp_a"}}
	groups, err := s.service.Groups(s.ctx, account)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal("beta", groups[0].Slug)
	s.Equal("alpha", groups[1].Slug)
}

func (s *ServiceSuite) TestGroupsSkipsDanglingReferences() {
	s.Require().NoError(s.storage.SaveGroup(s.ctx, &model.Group{ID: "grp_a", Slug: "alpha"}))

	account := &model.Account{GroupIDs: []model.GroupID{"grp_gone", "grp_a"}}
	groups, err := s.service.Groups(s.ctx, account)
	s.Require().NoError(err)
	s.Require().Len(groups, 1)
	s.Equal("alpha", groups[0].Slug)
}
