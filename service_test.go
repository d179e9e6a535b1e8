package roamstay

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ServiceTestSuite struct {
	suite.Suite
	users    *Service[*User]
	owners   *Service[*Owner]
	userRepo Repository[*User]
}

func (s *ServiceTestSuite) SetupTest() {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	s.userRepo = NewInMemRepository[*User]()
	s.users = NewService(s.userRepo, issuer, zerolog.Nop())
	s.owners = NewService(NewInMemRepository[*Owner](), issuer, zerolog.Nop())
}

func (s *ServiceTestSuite) registerUser(name, email, password string) (*User, string) {
	u, err := NewUser(name, email)
	assert.Nil(s.T(), err)

	u, token, err := s.users.Register(u, password)
	assert.Nil(s.T(), err)
	return u, token
}

func (s *ServiceTestSuite) TestRegister_ReturnsSanitizedProfileAndToken() {
	u, token := s.registerUser("Ann", "a@b.com", "secret123")

	assert.True(s.T(), IsValidID(string(u.ID)))
	assert.NotEmpty(s.T(), token)
	assert.Empty(s.T(), u.Password)
	assert.False(s.T(), u.CreatedAt.IsZero())
	assert.Equal(s.T(), u.CreatedAt, u.UpdatedAt)
}

func (s *ServiceTestSuite) TestRegister_StoresHashedPassword() {
	u, _ := s.registerUser("Ann", "a@b.com", "secret123")

	stored, err := s.userRepo.FindByID(u.ID)
	assert.Nil(s.T(), err)
	assert.NotEqual(s.T(), "secret123", stored.Password)
	assert.True(s.T(), checkPasswordHash(stored.Password, "secret123"))
}

func (s *ServiceTestSuite) TestRegister_RejectsDuplicateEmail() {
	s.registerUser("Ann", "a@b.com", "secret123")

	u, _ := NewUser("Other Ann", "a@b.com")
	_, _, err := s.users.Register(u, "password1")

	assert.Equal(s.T(), ErrEmailInUse, err)
}

func (s *ServiceTestSuite) TestRegister_RejectsMissingPassword() {
	u, _ := NewUser("Ann", "a@b.com")
	_, _, err := s.users.Register(u, "  ")

	assert.Equal(s.T(), ErrMissingFields, err)
}

func (s *ServiceTestSuite) TestLogin_SucceedsAfterRegistration() {
	registered, _ := s.registerUser("Ann", "a@b.com", "secret123")

	u, token, err := s.users.Login("A@B.com", "secret123")

	assert.Nil(s.T(), err)
	assert.NotEmpty(s.T(), token)
	assert.Equal(s.T(), registered.ID, u.ID)
	assert.Empty(s.T(), u.Password)
}

func (s *ServiceTestSuite) TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable() {
	s.registerUser("Ann", "a@b.com", "secret123")

	_, _, errUnknown := s.users.Login("nobody@b.com", "secret123")
	_, _, errWrong := s.users.Login("a@b.com", "wrong-password")

	assert.Equal(s.T(), ErrInvalidCredentials, errUnknown)
	assert.Equal(s.T(), ErrInvalidCredentials, errWrong)
}

func (s *ServiceTestSuite) TestLogin_RequiresCredentials() {
	_, _, err := s.users.Login("", "secret123")
	assert.Equal(s.T(), ErrMissingCredentials, err)

	_, _, err = s.users.Login("a@b.com", "")
	assert.Equal(s.T(), ErrMissingCredentials, err)
}

func (s *ServiceTestSuite) TestUpdateProfile_RehashesPassword() {
	u, _ := s.registerUser("Ann", "a@b.com", "secret123")

	newPassword := "different456"
	_, err := s.users.UpdateProfile(u.ID, &newPassword, func(*User) error { return nil })
	assert.Nil(s.T(), err)

	_, _, err = s.users.Login("a@b.com", "secret123")
	assert.Equal(s.T(), ErrInvalidCredentials, err)

	_, _, err = s.users.Login("a@b.com", "different456")
	assert.Nil(s.T(), err)
}

func (s *ServiceTestSuite) TestUpdateProfile_KeepsPasswordWhenAbsent() {
	u, _ := s.registerUser("Ann", "a@b.com", "secret123")

	updated, err := s.users.UpdateProfile(u.ID, nil, func(u *User) error {
		u.Name = "Ann B."
		return nil
	})

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "Ann B.", updated.Name)
	assert.True(s.T(), updated.UpdatedAt.After(updated.CreatedAt))

	_, _, err = s.users.Login("a@b.com", "secret123")
	assert.Nil(s.T(), err)
}

func (s *ServiceTestSuite) TestUpdateProfile_RejectsEmailAlreadyTaken() {
	s.registerUser("Ann", "a@b.com", "secret123")
	u, _ := s.registerUser("Ben", "b@b.com", "secret123")

	_, err := s.users.UpdateProfile(u.ID, nil, func(u *User) error {
		u.Email = "a@b.com"
		return nil
	})

	assert.Equal(s.T(), ErrEmailInUse, err)
}

func (s *ServiceTestSuite) TestUpdateProfile_UnknownID() {
	_, err := s.users.UpdateProfile("missing", nil, func(*User) error { return nil })
	assert.Equal(s.T(), ErrNotFound, err)
}

func (s *ServiceTestSuite) TestDelete_ThenProfileIsGone() {
	u, _ := s.registerUser("Ann", "a@b.com", "secret123")

	assert.Nil(s.T(), s.users.Delete(u.ID))
	assert.Equal(s.T(), ErrNotFound, s.users.Delete(u.ID))

	_, err := s.users.GetProfile(u.ID)
	assert.Equal(s.T(), ErrNotFound, err)
}

func (s *ServiceTestSuite) TestOwnerResortID_SurvivesUpdates() {
	o, err := NewOwner("Bay Resort", "Ann", "a@b.com", nil)
	assert.Nil(s.T(), err)

	o, _, err = s.owners.Register(o, "secret123")
	assert.Nil(s.T(), err)
	original := o.ResortID

	updated, err := s.owners.UpdateProfile(o.ID, nil, func(o *Owner) error {
		o.ResortName = "Cove Resort"
		return nil
	})

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), original, updated.ResortID)
	assert.Equal(s.T(), "Cove Resort", updated.ResortName)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
