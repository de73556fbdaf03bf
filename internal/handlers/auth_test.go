package handlers

import (
	"net/http"
	"strings"
)

func (suite *HandlerTestSuite) TestSignup() {
	cl := suite.newClient()

	w := cl.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": testPassword,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID       uint64 `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
			ImageURL string `json:"image_url"`
		} `json:"user"`
		Notice struct {
			Category string `json:"category"`
		} `json:"notice"`
	}
	cl.decode(w, &resp)
	suite.Equal("alice", resp.User.Username)
	suite.Equal("alice@example.com", resp.User.Email)
	suite.Equal("/static/images/default-pic.png", resp.User.ImageURL)
	suite.Equal("success", resp.Notice.Category)
	suite.NotContains(w.Body.String(), "password")

	// the session is bound
	me := cl.do(http.MethodGet, "/api/auth/me", nil)
	suite.Require().Equal(http.StatusOK, me.Code)
	suite.Contains(me.Body.String(), `"username":"alice"`)
}

func (suite *HandlerTestSuite) TestSignup_Rejections() {
	suite.newClient().signup("alice")

	cases := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"duplicate username", map[string]string{"username": "alice", "email": "other@example.com", "password": testPassword}, http.StatusConflict},
		{"duplicate email", map[string]string{"username": "bob", "email": "alice@example.com", "password": testPassword}, http.StatusConflict},
		{"short password", map[string]string{"username": "bob", "email": "bob@example.com", "password": "abc"}, http.StatusBadRequest},
		{"invalid email", map[string]string{"username": "bob", "email": "not-an-email", "password": testPassword}, http.StatusBadRequest},
		{"missing fields", map[string]string{"username": "bob"}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			w := suite.newClient().do(http.MethodPost, "/api/auth/signup", tc.body)
			suite.Equal(tc.status, w.Code, w.Body.String())
		})
	}

	w := suite.newClient().do(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice", "email": "x@example.com", "password": testPassword,
	})
	var body errorBody
	suite.newClient().decode(w, &body)
	suite.Equal("Username or email already taken", body.Message)
}

func (suite *HandlerTestSuite) TestLogin() {
	suite.newClient().signup("alice")

	cl := suite.newClient()
	w := cl.do(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": testPassword,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Notice struct {
			Category string `json:"category"`
			Message  string `json:"message"`
		} `json:"notice"`
	}
	cl.decode(w, &resp)
	suite.Equal("success", resp.Notice.Category)
	suite.Equal("Hello, alice!", resp.Notice.Message)

	me := cl.do(http.MethodGet, "/api/auth/me", nil)
	suite.Equal(http.StatusOK, me.Code)
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.newClient().signup("alice")

	for _, creds := range []map[string]string{
		{"username": "alice", "password": "wrong-password"},
		{"username": "nobody", "password": testPassword},
	} {
		cl := suite.newClient()
		w := cl.do(http.MethodPost, "/api/auth/login", creds)
		suite.Equal(http.StatusUnauthorized, w.Code)

		var body errorBody
		cl.decode(w, &body)
		suite.Equal("INVALID_CREDENTIALS", body.Code)
		suite.Equal("Invalid credentials.", body.Message)
		suite.Equal([]string{"danger:Invalid credentials."}, cl.notices())

		suite.Equal(http.StatusUnauthorized, cl.do(http.MethodGet, "/api/auth/me", nil).Code)
	}
}

func (suite *HandlerTestSuite) TestLogout() {
	cl := suite.newClient()
	cl.signup("alice")

	w := cl.do(http.MethodPost, "/api/auth/logout", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"redirect":"/login"`)

	suite.Equal(http.StatusUnauthorized, cl.do(http.MethodGet, "/api/auth/me", nil).Code)

	notices := cl.notices()
	suite.Contains(notices, "success:You have been logged out.")
}

func (suite *HandlerTestSuite) TestMe_Unauthorized() {
	cl := suite.newClient()
	w := cl.do(http.MethodGet, "/api/auth/me", nil)
	suite.Require().Equal(http.StatusUnauthorized, w.Code)

	var body errorBody
	cl.decode(w, &body)
	suite.Equal("Access unauthorized.", body.Message)
	suite.Equal("danger", body.Category)
	suite.Equal("/", body.Redirect)

	// the notice is one-shot
	suite.Equal([]string{"danger:Access unauthorized."}, cl.notices())
	suite.Empty(cl.notices())
}

func (suite *HandlerTestSuite) TestAuthRateLimit() {
	suite.router = suite.newRouter(2)

	cl := suite.newClient()
	for i := 0; i < 2; i++ {
		w := cl.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "x", "password": "wrong-password"})
		suite.Equal(http.StatusUnauthorized, w.Code)
	}

	w := cl.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "x", "password": "wrong-password"})
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.True(strings.Contains(w.Body.String(), "TOO_MANY_REQUESTS"))

	// signup has its own bucket
	suite.newClient().signup("alice")
}
