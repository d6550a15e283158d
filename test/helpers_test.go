//go:build integration_test

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/trainingcoach/internal/middleware"
	"github.com/2beens/trainingcoach/internal/misc"
)

// studentSession registers a student token the way the identity service does.
func (s *IntegrationTestSuite) studentSession(ctx context.Context, studentID string) string {
	token := "token-" + studentID
	s.Require().NoError(s.redisClient.Set(ctx, "student-session||"+token, studentID, 0).Err())
	return token
}

func (s *IntegrationTestSuite) doLogin(ctx context.Context) string {
	resp, body := s.do(ctx, http.MethodPost, "/a/login", "", map[string]string{
		"username": testUsername,
		"password": testPassword,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var loginResp misc.LoginResponse
	s.Require().NoError(json.Unmarshal(body, &loginResp))
	s.Require().NotEmpty(loginResp.Token)
	return loginResp.Token
}

func (s *IntegrationTestSuite) do(ctx context.Context, method, path, studentToken string, payload any) (*http.Response, []byte) {
	return s.doWithHeaders(ctx, method, path, payload, func(req *http.Request) {
		if studentToken != "" {
			req.Header.Set("Authorization", "Bearer "+studentToken)
		}
	})
}

func (s *IntegrationTestSuite) doAdmin(ctx context.Context, method, path, adminToken string, payload any) (*http.Response, []byte) {
	return s.doWithHeaders(ctx, method, path, payload, func(req *http.Request) {
		req.Header.Set(middleware.AdminTokenHeader, adminToken)
	})
}

func (s *IntegrationTestSuite) doWithHeaders(
	ctx context.Context,
	method, path string,
	payload any,
	setHeaders func(req *http.Request),
) (*http.Response, []byte) {
	var reqBody io.Reader
	if payload != nil {
		payloadJson, err := json.Marshal(payload)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(payloadJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", serverEndpoint, path), reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	setHeaders(req)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	return resp, respBytes
}
