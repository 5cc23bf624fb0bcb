package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boxsync/boxsync/internal/blockhash"
	"github.com/boxsync/boxsync/internal/utils"
)

// GetMetadata fetches the server's record for remotePath. A missing object is
// not an error: it returns Metadata with Exists=false.
func (c *Client) GetMetadata(ctx context.Context, remotePath string) (*Metadata, error) {
	var meta *Metadata

	err := c.withAuthRetry(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(&MetadataRequest{Path: remotePath}).
			SetSuccessResult(&meta).
			Post(v1FilesMetadata)

		return handleAPIError(resp, err, "file metadata")
	})

	if err != nil {
		if IsNotFound(err) {
			return &Metadata{Path: remotePath, Exists: false}, nil
		}
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("file metadata: empty response for %q", remotePath)
	}

	meta.Exists = true
	return meta, nil
}

// Upload sends the whole file at localPath to remotePath, replacing any
// existing object. The server records clientModified (whole-second UTC) as the
// object's modification time so later comparisons stay meaningful.
func (c *Client) Upload(ctx context.Context, remotePath string, localPath string, clientModified time.Time) (*Metadata, error) {
	if !utils.FileExists(localPath) {
		return nil, ErrFileNotFound
	}

	var meta *Metadata

	err := c.withAuthRetry(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("path", remotePath).
			SetQueryParam("client_modified", clientModified.Truncate(time.Second).UTC().Format(time.RFC3339)).
			SetRetryCount(0).
			SetFile("file", localPath).
			SetSuccessResult(&meta).
			Put(v1FilesUpload)

		return handleAPIError(resp, err, "file upload")
	})

	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("file upload: empty response for %q", remotePath)
	}

	meta.Exists = true
	return meta, nil
}

// Download streams the object at remotePath into localPath. The body lands in
// a temp file next to the target, its content hash is checked against the
// server's advertised hash, and only then is it renamed over localPath.
func (c *Client) Download(ctx context.Context, remotePath string, localPath string) error {
	if err := utils.EnsureParent(localPath); err != nil {
		return fmt.Errorf("file download %q: %w", remotePath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(localPath), filepath.Base(localPath)+".boxsync.tmp.*")
	if err != nil {
		return fmt.Errorf("file download %q: %w", remotePath, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	var wantHash string
	err = c.withAuthRetry(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("path", remotePath).
			DisableAutoReadResponse().
			SetOutputFile(tmpPath).
			Get(v1FilesDownload)

		if apiErr := handleAPIError(resp, err, "file download"); apiErr != nil {
			return apiErr
		}

		wantHash = resp.Header.Get(HeaderContentHash)
		return nil
	})
	if err != nil {
		return err
	}

	if wantHash != "" {
		gotHash, err := blockhash.Sum(tmpPath)
		if err != nil {
			return fmt.Errorf("file download %q: %w", remotePath, err)
		}
		if gotHash != wantHash {
			return fmt.Errorf("file download %q: %w", remotePath,
				NewAPIError(CodeHashMismatch, fmt.Sprintf("expected %s got %s", wantHash, gotHash)))
		}
	}

	if err := os.Rename(tmpPath, localPath); err != nil {
		return fmt.Errorf("file download %q: %w", remotePath, err)
	}

	success = true
	return nil
}
