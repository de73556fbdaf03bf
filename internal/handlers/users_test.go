package handlers

import (
	"fmt"
	"net/http"
)

type profileBody struct {
	User struct {
		ID       uint64 `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	Stats struct {
		Messages  int64 `json:"messages"`
		Following int64 `json:"following"`
		Followers int64 `json:"followers"`
		Likes     int64 `json:"likes"`
	} `json:"stats"`
	Messages []struct {
		Text string `json:"text"`
	} `json:"messages"`
	IsFollowing *bool `json:"is_following"`
}

type userListBody struct {
	Users []struct {
		ID       uint64 `json:"id"`
		Username string `json:"username"`
	} `json:"users"`
}

func usernames(body userListBody) []string {
	out := make([]string, 0, len(body.Users))
	for _, u := range body.Users {
		out = append(out, u.Username)
	}
	return out
}

func (suite *HandlerTestSuite) TestListUsers() {
	for _, name := range []string{"alice", "bob", "alicia"} {
		suite.newClient().signup(name)
	}

	cl := suite.newClient()
	var all userListBody
	w := cl.do(http.MethodGet, "/api/users", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	cl.decode(w, &all)
	suite.Equal([]string{"alice", "bob", "alicia"}, usernames(all))
	suite.NotContains(w.Body.String(), "@example.com")

	var filtered userListBody
	w = cl.do(http.MethodGet, "/api/users?q=ali", nil)
	cl.decode(w, &filtered)
	suite.Equal([]string{"alice", "alicia"}, usernames(filtered))
}

func (suite *HandlerTestSuite) TestGetProfile() {
	alice := suite.newClient()
	aliceID := alice.signup("alice")
	alice.post("first")
	alice.post("second")

	bob := suite.newClient()
	bob.signup("bob")
	suite.Require().Equal(http.StatusOK, bob.do(http.MethodPost, fmt.Sprintf("/api/users/follow/%d", aliceID), nil).Code)

	var profile profileBody
	w := bob.do(http.MethodGet, fmt.Sprintf("/api/users/%d", aliceID), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	bob.decode(w, &profile)
	suite.Equal("alice", profile.User.Username)
	suite.Empty(profile.User.Email)
	suite.Equal(int64(2), profile.Stats.Messages)
	suite.Equal(int64(1), profile.Stats.Followers)
	suite.Len(profile.Messages, 2)
	suite.Require().NotNil(profile.IsFollowing)
	suite.True(*profile.IsFollowing)

	// anonymous viewers get no follow state
	var anon profileBody
	w = suite.newClient().do(http.MethodGet, fmt.Sprintf("/api/users/%d?limit=1", aliceID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.newClient().decode(w, &anon)
	suite.Nil(anon.IsFollowing)
	suite.Len(anon.Messages, 1)
}

func (suite *HandlerTestSuite) TestGetProfile_Errors() {
	cl := suite.newClient()
	suite.Equal(http.StatusNotFound, cl.do(http.MethodGet, "/api/users/999", nil).Code)
	suite.Equal(http.StatusBadRequest, cl.do(http.MethodGet, "/api/users/abc", nil).Code)
}

func (suite *HandlerTestSuite) TestFollowAndStopFollowing() {
	aliceID := suite.newClient().signup("alice")
	bob := suite.newClient()
	bobID := bob.signup("bob")

	w := bob.do(http.MethodPost, fmt.Sprintf("/api/users/follow/%d", aliceID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), fmt.Sprintf(`"redirect":"/users/%d/following"`, bobID))

	// following twice is fine
	suite.Equal(http.StatusOK, bob.do(http.MethodPost, fmt.Sprintf("/api/users/follow/%d", aliceID), nil).Code)

	var following userListBody
	w = bob.do(http.MethodGet, fmt.Sprintf("/api/users/%d/following", bobID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	bob.decode(w, &following)
	suite.Equal([]string{"alice"}, usernames(following))

	var followers userListBody
	w = bob.do(http.MethodGet, fmt.Sprintf("/api/users/%d/followers", aliceID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	bob.decode(w, &followers)
	suite.Equal([]string{"bob"}, usernames(followers))

	suite.Equal(http.StatusOK, bob.do(http.MethodPost, fmt.Sprintf("/api/users/stop-following/%d", aliceID), nil).Code)

	w = bob.do(http.MethodGet, fmt.Sprintf("/api/users/%d/following", bobID), nil)
	var after userListBody
	bob.decode(w, &after)
	suite.Empty(after.Users)
}

func (suite *HandlerTestSuite) TestFollow_Errors() {
	alice := suite.newClient()
	aliceID := alice.signup("alice")

	suite.Equal(http.StatusBadRequest, alice.do(http.MethodPost, fmt.Sprintf("/api/users/follow/%d", aliceID), nil).Code)
	suite.Equal(http.StatusNotFound, alice.do(http.MethodPost, "/api/users/follow/999", nil).Code)
	suite.Equal(http.StatusBadRequest, alice.do(http.MethodPost, "/api/users/follow/abc", nil).Code)

	anon := suite.newClient()
	suite.Equal(http.StatusUnauthorized, anon.do(http.MethodPost, fmt.Sprintf("/api/users/follow/%d", aliceID), nil).Code)
	suite.Equal(http.StatusUnauthorized, anon.do(http.MethodGet, fmt.Sprintf("/api/users/%d/following", aliceID), nil).Code)
	suite.Equal(http.StatusUnauthorized, anon.do(http.MethodGet, fmt.Sprintf("/api/users/%d/followers", aliceID), nil).Code)
}

func (suite *HandlerTestSuite) TestUpdateProfile() {
	cl := suite.newClient()
	id := cl.signup("alice")

	w := cl.do(http.MethodPatch, "/api/users/profile", map[string]interface{}{
		"username": "alice2",
		"bio":      "hello there",
		"password": testPassword,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), fmt.Sprintf(`"redirect":"/users/%d"`, id))

	user := suite.user(id)
	suite.Require().NotNil(user)
	suite.Equal("alice2", user.Username)
	suite.Equal("hello there", user.Bio)
	suite.Equal("alice@example.com", user.Email)
}

func (suite *HandlerTestSuite) TestUpdateProfile_WrongPassword() {
	cl := suite.newClient()
	id := cl.signup("alice")

	w := cl.do(http.MethodPatch, "/api/users/profile", map[string]interface{}{
		"username": "mallory",
		"password": "not-my-password",
	})
	suite.Require().Equal(http.StatusUnauthorized, w.Code)

	var body errorBody
	cl.decode(w, &body)
	suite.Equal("Wrong password, please try again.", body.Message)
	suite.Equal("/", body.Redirect)
	suite.Contains(cl.notices(), "danger:Wrong password, please try again.")

	suite.Equal("alice", suite.user(id).Username)
}

func (suite *HandlerTestSuite) TestUpdateProfile_DuplicateUsername() {
	suite.newClient().signup("bob")
	cl := suite.newClient()
	cl.signup("alice")

	w := cl.do(http.MethodPatch, "/api/users/profile", map[string]interface{}{
		"username": "bob",
		"password": testPassword,
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteAccount() {
	bob := suite.newClient()
	bobID := bob.signup("bob")
	bob.post("bye")

	alice := suite.newClient()
	aliceID := alice.signup("alice")
	suite.Require().Equal(http.StatusOK, alice.do(http.MethodPost, fmt.Sprintf("/api/users/follow/%d", bobID), nil).Code)

	w := bob.do(http.MethodPost, "/api/users/delete", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"redirect":"/signup"`)

	suite.Nil(suite.user(bobID))
	suite.Equal(http.StatusUnauthorized, bob.do(http.MethodGet, "/api/auth/me", nil).Code)
	suite.Equal(http.StatusNotFound, alice.do(http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), nil).Code)

	var profile profileBody
	w = alice.do(http.MethodGet, fmt.Sprintf("/api/users/%d", aliceID), nil)
	alice.decode(w, &profile)
	suite.Equal(int64(0), profile.Stats.Following)
}

func (suite *HandlerTestSuite) TestLikes() {
	alice := suite.newClient()
	aliceID := alice.signup("alice")
	msgID := alice.post("like me")

	suite.Require().Equal(http.StatusOK, alice.do(http.MethodPost, fmt.Sprintf("/api/messages/%d/like", msgID), nil).Code)

	var body struct {
		Messages []struct {
			ID uint64 `json:"id"`
		} `json:"messages"`
	}
	w := suite.newClient().do(http.MethodGet, fmt.Sprintf("/api/users/%d/likes", aliceID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	alice.decode(w, &body)
	suite.Require().Len(body.Messages, 1)
	suite.Equal(msgID, body.Messages[0].ID)

	suite.Equal(http.StatusNotFound, alice.do(http.MethodGet, "/api/users/999/likes", nil).Code)
}
