package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type APIErrorTestSuite struct {
	suite.Suite
}

func TestAPIErrorSuite(t *testing.T) {
	suite.Run(t, new(APIErrorTestSuite))
}

func (s *APIErrorTestSuite) TestCodeForStatus() {
	testCases := []struct {
		status   int
		expected ErrorCode
	}{
		{http.StatusUnauthorized, APIUnauthorized},
		{http.StatusForbidden, APIUnauthorized},
		{http.StatusNotFound, APINotFound},
		{http.StatusConflict, APIConflict},
		{http.StatusTooManyRequests, APIRateLimited},
		{http.StatusInternalServerError, APIServerError},
		{http.StatusBadGateway, APIServerError},
		{http.StatusBadRequest, APIMalformed},
		{http.StatusTeapot, APIMalformed},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("status_%d", tc.status), func() {
			s.Equal(tc.expected, NewAPIError(tc.status, "").Code)
		})
	}
}

func (s *APIErrorTestSuite) TestUserMessage() {
	withDetail := NewAPIError(http.StatusConflict, "email already registered")
	s.Equal("email already registered", withDetail.UserMessage())

	withoutDetail := NewAPIError(http.StatusConflict, "")
	s.Equal(GetErrorMessage(APIConflict), withoutDetail.UserMessage())
}

func (s *APIErrorTestSuite) TestErrorIncludesCodeAndStatus() {
	err := NewAPIError(http.StatusNotFound, "no such transaction")
	s.Contains(err.Error(), string(APINotFound))
	s.Contains(err.Error(), "404")
	s.Contains(err.Error(), "no such transaction")
}

func (s *APIErrorTestSuite) TestIsUnauthorized() {
	s.True(IsUnauthorized(NewAPIError(http.StatusUnauthorized, "")))
	s.False(IsUnauthorized(NewAPIError(http.StatusForbidden, "")))
	s.False(IsUnauthorized(fmt.Errorf("wrapped: %w", NewAPIError(http.StatusNotFound, ""))))
	s.True(IsUnauthorized(fmt.Errorf("wrapped: %w", NewAPIError(http.StatusUnauthorized, ""))))
	s.False(IsUnauthorized(fmt.Errorf("plain failure")))
	s.False(IsUnauthorized(nil))
}

func (s *APIErrorTestSuite) TestStatusOf() {
	s.Equal(http.StatusConflict, StatusOf(NewAPIError(http.StatusConflict, "")))
	s.Equal(http.StatusConflict, StatusOf(fmt.Errorf("wrapped: %w", NewAPIError(http.StatusConflict, ""))))
	s.Zero(StatusOf(fmt.Errorf("plain failure")))
	s.Zero(StatusOf(NewTransportError(fmt.Errorf("connection refused"))))
}

func (s *APIErrorTestSuite) TestTransportError() {
	err := NewTransportError(fmt.Errorf("dial tcp: connection refused"))
	s.Equal(APIUnreachable, err.Code)
	s.Zero(err.StatusCode)
	s.Equal("dial tcp: connection refused", err.UserMessage())
}

func (s *APIErrorTestSuite) TestGetErrorMessage() {
	s.Equal("Invalid email or password", GetErrorMessage(AuthInvalidCredentials))
	s.Equal("An error occurred", GetErrorMessage(ErrorCode("NOPE_999")))
}

func (s *APIErrorTestSuite) TestIsValidErrorCode() {
	s.True(IsValidErrorCode(AuthRefreshFailed))
	s.True(IsValidErrorCode(ValidationInvalidAmount))
	s.False(IsValidErrorCode(ErrorCode("NOPE_999")))
}
