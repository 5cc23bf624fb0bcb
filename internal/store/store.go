// Package store is the HTTP client for the box server: remote metadata
// lookups, whole-file uploads and downloads, and the email/code token flow.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/imroc/req/v3"

	"github.com/boxsync/boxsync/internal/version"
)

const (
	v1FilesMetadata = "/api/v1/files/metadata"
	v1FilesUpload   = "/api/v1/files/upload"
	v1FilesDownload = "/api/v1/files/download"
)

// Client talks to the box server on behalf of one logged-in user.
type Client struct {
	http      *req.Client
	baseURL   string
	token     *Token
	tokenPath string
	refreshed bool
}

// New builds a Client with the given credential. The token is re-persisted to
// tokenPath whenever a refresh rotates it.
func New(baseURL string, token *Token, tokenPath string) (*Client, error) {
	if baseURL == "" {
		return nil, ErrNoServerURL
	}
	if token == nil || token.AccessToken == "" {
		return nil, ErrNoToken
	}

	client := req.C().
		SetBaseURL(baseURL).
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1*time.Second).
		SetUserAgent(BoxSyncUserAgent).
		SetCommonHeader(HeaderBoxVersion, version.Version).
		SetCommonBearerAuthToken(token.AccessToken).
		SetCommonErrorResult(&APIError{})

	return &Client{
		http:      client,
		baseURL:   baseURL,
		token:     token,
		tokenPath: tokenPath,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// withAuthRetry runs fn and, if the server rejected the access token, rotates
// it through the refresh endpoint once and runs fn again.
func (c *Client) withAuthRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || !isAuthError(err) || c.refreshed || c.token.RefreshToken == "" {
		return err
	}

	c.refreshed = true
	slog.Debug("access token rejected, refreshing", "server", c.baseURL)

	fresh, refreshErr := RefreshAuthToken(ctx, c.baseURL, c.token.RefreshToken)
	if refreshErr != nil {
		return err
	}

	c.token.AccessToken = fresh.AccessToken
	if fresh.RefreshToken != "" {
		c.token.RefreshToken = fresh.RefreshToken
	}
	c.http.SetCommonBearerAuthToken(c.token.AccessToken)

	if c.tokenPath != "" {
		if saveErr := c.token.Save(c.tokenPath); saveErr != nil {
			slog.Warn("could not persist refreshed token", "path", c.tokenPath, "error", saveErr)
		}
	}

	return fn()
}
