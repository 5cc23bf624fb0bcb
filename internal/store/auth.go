package store

import (
	"context"
	"fmt"

	"github.com/imroc/req/v3"

	"github.com/boxsync/boxsync/internal/utils"
)

const (
	authCodeRequest = "/auth/code/request"
	authCodeVerify  = "/auth/code/verify"
	authRefresh     = "/auth/refresh"
)

func authClient(serverURL string) *req.Client {
	return req.C().
		SetBaseURL(serverURL).
		SetUserAgent(BoxSyncUserAgent).
		SetCommonErrorResult(&APIError{})
}

// VerifyEmail starts the login flow by asking the server to email a one-time
// verification code.
func VerifyEmail(ctx context.Context, serverURL string, email string) error {
	if !utils.IsValidEmail(email) {
		return ErrInvalidEmail
	}

	resp, err := authClient(serverURL).R().
		SetContext(ctx).
		SetBody(&VerifyEmailRequest{Email: email}).
		Post(authCodeRequest)

	return handleAPIError(resp, err, "request verification code")
}

// VerifyEmailCode exchanges the emailed code for an access/refresh token pair.
func VerifyEmailCode(ctx context.Context, serverURL string, codeReq *VerifyEmailCodeRequest) (*AuthTokenResponse, error) {
	if !IsValidCode(codeReq.Code) {
		return nil, ErrInvalidCode
	}

	var tokens *AuthTokenResponse

	resp, err := authClient(serverURL).R().
		SetContext(ctx).
		SetBody(codeReq).
		SetSuccessResult(&tokens).
		Post(authCodeVerify)

	if err := handleAPIError(resp, err, "verify code"); err != nil {
		return nil, err
	}

	if tokens == nil || tokens.AccessToken == "" {
		return nil, fmt.Errorf("verify code: empty token response")
	}

	return tokens, nil
}

// RefreshAuthToken trades a refresh token for a fresh token pair.
func RefreshAuthToken(ctx context.Context, serverURL string, refreshToken string) (*AuthTokenResponse, error) {
	var tokens *AuthTokenResponse

	resp, err := authClient(serverURL).R().
		SetContext(ctx).
		SetBody(&RefreshTokenRequest{RefreshToken: refreshToken}).
		SetSuccessResult(&tokens).
		Post(authRefresh)

	if err := handleAPIError(resp, err, "refresh token"); err != nil {
		return nil, err
	}

	if tokens == nil || tokens.AccessToken == "" {
		return nil, fmt.Errorf("refresh token: empty token response")
	}

	return tokens, nil
}
