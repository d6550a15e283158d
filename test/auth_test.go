//go:build integration_test

package test

import (
	"context"
	"net/http"
)

func (s *IntegrationTestSuite) TestLoginLogout() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.doLogin(ctx)

	resp, body := s.doAdmin(ctx, http.MethodGet, "/training/adaptation/rules", token, nil)
	s.Equal(http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.doAdmin(ctx, http.MethodGet, "/a/logout", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("logged-out", string(body))

	resp, _ = s.doAdmin(ctx, http.MethodGet, "/training/adaptation/rules", token, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogin_WrongPassword() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp, _ := s.do(ctx, http.MethodPost, "/a/login", "", map[string]string{
		"username": testUsername,
		"password": "wrong",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestTrainingRoutes_RequireStudentToken() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp, _ := s.do(ctx, http.MethodGet, "/training/checkins/today", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(ctx, http.MethodGet, "/training/checkins/today", "unknown-token", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestVersion() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp, body := s.do(ctx, http.MethodGet, "/version", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("test-version-info", string(body))
}
