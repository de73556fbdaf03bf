package handlers

import (
	"fmt"
	"net/http"
	"strings"
)

func (suite *HandlerTestSuite) TestCreateMessage() {
	cl := suite.newClient()
	id := cl.signup("alice")

	w := cl.do(http.MethodPost, "/api/messages", map[string]string{"text": "  hello world  "})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Message struct {
			ID     uint64 `json:"id"`
			Text   string `json:"text"`
			UserID uint64 `json:"user_id"`
			User   struct {
				Username string `json:"username"`
			} `json:"user"`
		} `json:"message"`
		Redirect string `json:"redirect"`
	}
	cl.decode(w, &resp)
	suite.Equal("hello world", resp.Message.Text)
	suite.Equal(id, resp.Message.UserID)
	suite.Equal("alice", resp.Message.User.Username)
	suite.Equal(fmt.Sprintf("/users/%d", id), resp.Redirect)
}

func (suite *HandlerTestSuite) TestCreateMessage_Rejections() {
	cl := suite.newClient()
	cl.signup("alice")

	suite.Equal(http.StatusBadRequest, cl.do(http.MethodPost, "/api/messages", map[string]string{"text": "   "}).Code)
	suite.Equal(http.StatusBadRequest, cl.do(http.MethodPost, "/api/messages", map[string]string{"text": strings.Repeat("a", 141)}).Code)
	suite.Equal(http.StatusCreated, cl.do(http.MethodPost, "/api/messages", map[string]string{"text": strings.Repeat("é", 140)}).Code)

	anon := suite.newClient()
	suite.Equal(http.StatusUnauthorized, anon.do(http.MethodPost, "/api/messages", map[string]string{"text": "hi"}).Code)
}

func (suite *HandlerTestSuite) TestGetMessage() {
	cl := suite.newClient()
	cl.signup("alice")
	id := cl.post("hello")

	w := suite.newClient().do(http.MethodGet, fmt.Sprintf("/api/messages/%d", id), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"text":"hello"`)

	suite.Equal(http.StatusNotFound, cl.do(http.MethodGet, "/api/messages/999", nil).Code)
	suite.Equal(http.StatusBadRequest, cl.do(http.MethodGet, "/api/messages/-1", nil).Code)
}

func (suite *HandlerTestSuite) TestDeleteMessage() {
	alice := suite.newClient()
	alice.signup("alice")
	id := alice.post("mine")

	bob := suite.newClient()
	bob.signup("bob")

	w := bob.do(http.MethodPost, fmt.Sprintf("/api/messages/%d/delete", id), nil)
	suite.Require().Equal(http.StatusForbidden, w.Code)
	var body errorBody
	bob.decode(w, &body)
	suite.Equal("Access unauthorized.", body.Message)
	suite.Equal("/", body.Redirect)

	suite.Equal(http.StatusUnauthorized, suite.newClient().do(http.MethodPost, fmt.Sprintf("/api/messages/%d/delete", id), nil).Code)
	suite.Equal(http.StatusNotFound, alice.do(http.MethodPost, "/api/messages/999/delete", nil).Code)

	suite.Require().Equal(http.StatusOK, alice.do(http.MethodPost, fmt.Sprintf("/api/messages/%d/delete", id), nil).Code)
	suite.Equal(http.StatusNotFound, alice.do(http.MethodGet, fmt.Sprintf("/api/messages/%d", id), nil).Code)
}

func (suite *HandlerTestSuite) TestToggleLike() {
	alice := suite.newClient()
	alice.signup("alice")
	id := alice.post("like me")

	bob := suite.newClient()
	bob.signup("bob")

	var resp struct {
		Result string `json:"result"`
		Notice struct {
			Message string `json:"message"`
		} `json:"notice"`
		Redirect string `json:"redirect"`
	}

	w := bob.do(http.MethodPost, fmt.Sprintf("/api/messages/%d/like", id), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	bob.decode(w, &resp)
	suite.Equal("liked", resp.Result)
	suite.Equal("You have liked the warble.", resp.Notice.Message)
	suite.Equal(fmt.Sprintf("/messages/%d", id), resp.Redirect)

	w = bob.do(http.MethodPost, fmt.Sprintf("/api/messages/%d/like", id), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	bob.decode(w, &resp)
	suite.Equal("unliked", resp.Result)
	suite.Equal("You have unliked the warble.", resp.Notice.Message)

	suite.Equal(http.StatusNotFound, bob.do(http.MethodPost, "/api/messages/999/like", nil).Code)
}

func (suite *HandlerTestSuite) TestToggleLike_SignedOut() {
	alice := suite.newClient()
	alice.signup("alice")
	id := alice.post("like me")

	anon := suite.newClient()
	w := anon.do(http.MethodPost, fmt.Sprintf("/api/messages/%d/like", id), nil)
	suite.Require().Equal(http.StatusUnauthorized, w.Code)

	var body errorBody
	anon.decode(w, &body)
	suite.Equal("UNAUTHORIZED", body.Code)
	suite.Equal("You must be logged in to like a warble.", body.Message)
	suite.Equal("danger", body.Category)
	suite.Equal("/login", body.Redirect)
	suite.Equal([]string{"danger:You must be logged in to like a warble."}, anon.notices())
}
