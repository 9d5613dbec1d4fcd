package socialmedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	svc AccountService
	req registerRequest
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.svc = NewAccountService(NewAccountRepository())
	s.req = registerRequest{"ann", "pass1"}
}

func (s *AccountServiceTestSuite) TestRegister_AssignsAFreshID() {
	acc, err := s.svc.Register(s.req)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), acc.ID)
	assert.Equal(s.T(), "ann", acc.Username)

	acc2, err := s.svc.Register(registerRequest{"bob", "pass2"})

	assert.NoError(s.T(), err)
	assert.NotEqual(s.T(), acc.ID, acc2.ID)
}

func (s *AccountServiceTestSuite) TestRegister_ValidationOrder() {
	tests := []struct {
		req     registerRequest
		wantErr error
	}{
		{registerRequest{"", "pass1"}, ErrInvalidUsername},
		{registerRequest{"   ", "pass1"}, ErrInvalidUsername},
		{registerRequest{"", "abc"}, ErrInvalidUsername},
		{registerRequest{"bob", "abc"}, ErrInvalidPassword},
	}

	for _, tt := range tests {
		acc, err := s.svc.Register(tt.req)

		assert.Nil(s.T(), acc)
		assert.Equal(s.T(), tt.wantErr, err)
	}
}

func (s *AccountServiceTestSuite) TestRegister_DuplicateUsernameFailsRegardlessOfPassword() {
	_, err := s.svc.Register(s.req)
	assert.NoError(s.T(), err)

	acc, err := s.svc.Register(registerRequest{"ann", "other"})

	assert.Nil(s.T(), acc)
	assert.Equal(s.T(), ErrExistingUsername, err)
}

func (s *AccountServiceTestSuite) TestLogin() {
	registered, err := s.svc.Register(s.req)
	assert.NoError(s.T(), err)

	tests := []struct {
		req     loginRequest
		wantErr error
		wantAcc *Account
	}{
		{loginRequest{"", ""}, ErrInvalidCredentials, nil},
		{loginRequest{"ann", ""}, ErrInvalidCredentials, nil},
		{loginRequest{"", "pass1"}, ErrInvalidCredentials, nil},
		{loginRequest{"nobody", "pass1"}, ErrInvalidCredentials, nil},
		{loginRequest{"ann", "wrong"}, ErrInvalidCredentials, nil},
		{loginRequest{"ann", "PASS1"}, ErrInvalidCredentials, nil},
		{loginRequest{"ann", "pass1"}, nil, registered},
	}

	for _, tt := range tests {
		acc, err := s.svc.Login(tt.req)

		assert.Equal(s.T(), tt.wantErr, err)
		assert.Equal(s.T(), tt.wantAcc, acc)
	}
}

func (s *AccountServiceTestSuite) TestLogin_NeverRegisteredUsernameAlwaysFails() {
	acc, err := s.svc.Login(loginRequest{"ghost", "whatever"})

	assert.Nil(s.T(), acc)
	assert.Equal(s.T(), ErrInvalidCredentials, err)
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
