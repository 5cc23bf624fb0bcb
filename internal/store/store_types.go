package store

import (
	"fmt"
	"runtime"
	"time"

	"github.com/boxsync/boxsync/internal/version"
)

const (
	HeaderUserAgent   = "User-Agent"
	HeaderBoxVersion  = "X-Box-Version"
	HeaderContentHash = "X-Content-Hash"
)

var BoxSyncUserAgent = fmt.Sprintf("BoxSync/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)

// Metadata is the server's record for a remote path. Exists is false when the
// store has no object at that path; ContentHash and ClientModified are only
// meaningful when Exists is true.
type Metadata struct {
	Path           string    `json:"path"`
	Size           int64     `json:"size"`
	ContentHash    string    `json:"content_hash"`
	ClientModified time.Time `json:"client_modified"`
	Exists         bool      `json:"-"`
}

type MetadataRequest struct {
	Path string `json:"path"`
}
