package services

import (
	"strings"

	"github.com/yukikurage/warbler/internal/constants"
)

func (suite *ServiceTestSuite) TestSignup_StoresHashedPassword() {
	user := suite.signup("alice")

	suite.NotEqual(testPassword, user.PasswordHash)
	suite.NotEmpty(user.PasswordHash)

	authed, err := suite.auth.Authenticate(suite.ctx, "alice", testPassword)
	suite.Require().NoError(err)
	suite.Require().NotNil(authed)
	suite.Equal(user.ID, authed.ID)

	for _, wrong := range []string{"", "password124", strings.ToUpper(testPassword), testPassword + " "} {
		authed, err = suite.auth.Authenticate(suite.ctx, "alice", wrong)
		suite.NoError(err)
		suite.Nil(authed, "password %q must be rejected", wrong)
	}
}

func (suite *ServiceTestSuite) TestSignup_Defaults() {
	user := suite.signup("alice")

	suite.Equal(constants.DefaultImageURL, user.ImageURL)
	suite.Equal(constants.DefaultHeaderImageURL, user.HeaderImageURL)
	suite.Empty(user.Bio)
	suite.Empty(user.Location)
}

func (suite *ServiceTestSuite) TestSignup_CustomImageAndTrim() {
	user, err := suite.auth.Signup(suite.ctx, SignupInput{
		Username: "  alice  ",
		Email:    " alice@example.com ",
		Password: testPassword,
		ImageURL: "https://example.com/alice.png",
	})
	suite.Require().NoError(err)

	suite.Equal("alice", user.Username)
	suite.Equal("alice@example.com", user.Email)
	suite.Equal("https://example.com/alice.png", user.ImageURL)
}

func (suite *ServiceTestSuite) TestSignup_PasswordTooShort() {
	for _, password := range []string{"12345", "ééé", "日本語"} {
		_, err := suite.auth.Signup(suite.ctx, SignupInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: password,
		})

		suite.ErrorIs(err, ErrPasswordTooShort, password)
	}
	suite.Zero(suite.userCount())
}

func (suite *ServiceTestSuite) TestSignup_InvalidInput() {
	cases := []SignupInput{
		{Username: "", Email: "alice@example.com", Password: testPassword},
		{Username: "alice", Email: "not-an-email", Password: testPassword},
		{Username: strings.Repeat("a", 51), Email: "alice@example.com", Password: testPassword},
	}

	for _, input := range cases {
		_, err := suite.auth.Signup(suite.ctx, input)
		suite.ErrorIs(err, ErrInvalidInput)
	}
	suite.Zero(suite.userCount())
}

func (suite *ServiceTestSuite) TestSignup_DuplicateUsername() {
	first := suite.signup("alice")

	_, err := suite.auth.Signup(suite.ctx, SignupInput{
		Username: "alice",
		Email:    "someone-else@example.com",
		Password: "different-password",
	})
	suite.ErrorIs(err, ErrUsernameOrEmailTaken)
	suite.Equal(int64(1), suite.userCount())

	stored, err := suite.auth.GetUser(suite.ctx, first.ID)
	suite.Require().NoError(err)
	suite.Equal("alice@example.com", stored.Email)

	authed, err := suite.auth.Authenticate(suite.ctx, "alice", testPassword)
	suite.Require().NoError(err)
	suite.NotNil(authed)
}

func (suite *ServiceTestSuite) TestSignup_DuplicateEmail() {
	suite.signup("alice")

	_, err := suite.auth.Signup(suite.ctx, SignupInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: testPassword,
	})
	suite.ErrorIs(err, ErrUsernameOrEmailTaken)
	suite.Equal(int64(1), suite.userCount())
}

func (suite *ServiceTestSuite) TestAuthenticate_UnknownUser() {
	authed, err := suite.auth.Authenticate(suite.ctx, "ghost", testPassword)
	suite.NoError(err)
	suite.Nil(authed)
}

func (suite *ServiceTestSuite) TestAuthenticate_CaseSensitiveUsername() {
	suite.signup("Alice")

	authed, err := suite.auth.Authenticate(suite.ctx, "alice", testPassword)
	suite.NoError(err)
	suite.Nil(authed)
}

func (suite *ServiceTestSuite) TestGetUser_NotFound() {
	_, err := suite.auth.GetUser(suite.ctx, 999)
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestNewUser_DoesNotPersist() {
	user, err := NewUser(SignupInput{Username: "carol", Email: "carol@example.com", Password: testPassword})
	suite.Require().NoError(err)

	suite.Zero(user.ID)
	suite.True(VerifyPassword(testPassword, user.PasswordHash))
	suite.Zero(suite.userCount())
}
