package errors

// ErrorCode classifies failures surfaced to the user. Codes group by where
// the failure originated rather than by endpoint: network failures are
// retryable by the user, validation failures never reach the network, and
// auth failures force a token refresh or logout.
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthSessionExpired     ErrorCode = "AUTH_002"
	AuthMissingToken       ErrorCode = "AUTH_003"
	AuthRefreshFailed      ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidAmount ErrorCode = "VALIDATION_003"
)

// Network and backend error codes (API_*)
const (
	APIUnreachable  ErrorCode = "API_001"
	APINotFound     ErrorCode = "API_002"
	APIConflict     ErrorCode = "API_003"
	APIRateLimited  ErrorCode = "API_004"
	APIServerError  ErrorCode = "API_005"
	APIMalformed    ErrorCode = "API_006"
	APIUnauthorized ErrorCode = "API_007"
)

var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials: "Invalid email or password",
	AuthSessionExpired:     "Your session has expired, please sign in again",
	AuthMissingToken:       "Not signed in",
	AuthRefreshFailed:      "Could not renew the session",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidAmount: "Amount must be a positive number",

	APIUnreachable:  "Could not reach the server, please try again",
	APINotFound:     "The requested resource was not found",
	APIConflict:     "The request conflicts with existing data",
	APIRateLimited:  "Too many requests, please slow down",
	APIServerError:  "The server reported an error, please try again later",
	APIMalformed:    "The server returned an unexpected response",
	APIUnauthorized: "You are not authorized to perform this action",
}

// GetErrorMessage returns the default user-facing message for a code.
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks whether the code is registered.
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
