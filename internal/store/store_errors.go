package store

import (
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
)

var (
	// store common
	ErrNoServerURL  = errors.New("store: server url missing")
	ErrNoToken      = errors.New("store: no credential token")
	ErrInvalidEmail = errors.New("store: invalid email")

	// auth
	ErrInvalidCode = errors.New("store: invalid verification code")

	// files
	ErrFileNotFound = errors.New("store: local file not found")
)

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error
	CodeAccessDenied   = "E_ACCESS_DENIED"   // access denied
	CodeUnknownError   = "E_UNKNOWN_ERR"     // unknown error

	// Auth errors
	CodeAuthInvalidCredentials = "E_AUTH_INVALID_CREDENTIALS" // token invalid, expired, or malformed
	CodeAuthCodeVerifyFailed   = "E_AUTH_CODE_VERIFY_FAILED"  // email verification code rejected
	CodeAuthRefreshFailed      = "E_AUTH_TOKEN_REFRESH_FAILED"

	// File errors
	CodeFileNotFound  = "E_FILE_NOT_FOUND"         // no object at the requested path
	CodeFileGetFailed = "E_FILE_GET_OP_FAILED"     // download/metadata operation failed
	CodePutFailed     = "E_FILE_PUT_OP_FAILED"     // upload operation failed
	CodeHashMismatch  = "E_FILE_INTEGRITY_FAILURE" // downloaded bytes do not match the advertised content hash
)

// APIError is the decoded error body of a failed box server response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s", e.Code, e.Message)
}

// IsNotFound reports whether err carries the server's not-found code.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeFileNotFound
}

func isAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeAuthInvalidCredentials
}

// handleAPIError folds the transport error and the API error state of a
// response into a single error, or nil on success.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s %w", operation, requestErr)
	}

	// got a response, but api returned an error
	if resp.IsErrorState() {
		if err, ok := resp.ErrorResult().(*APIError); ok {
			return fmt.Errorf("%s %w", operation, err)
		}

		return fmt.Errorf("api error: %s %s", operation, resp.Status)
	}

	return nil
}
