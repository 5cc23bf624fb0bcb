// Package sync holds the per-file reconciliation core: the pure decision
// procedure comparing local and remote file state, and the runner that walks
// the configured file list, prompts the operator, and dispatches transfers.
package sync

import (
	"time"
)

// LocalFile is the state of a local file derived fresh from the filesystem at
// the start of a file's reconciliation. It is never cached between runs.
type LocalFile struct {
	Path        string
	Size        int64
	ModTime     time.Time
	ContentHash string
}

// RemoteFile is the remote store's view of the mapped path. Exists is false
// when the store has no object there, which is distinct from an unknown hash.
type RemoteFile struct {
	Path        string
	Exists      bool
	ContentHash string
	ModTime     time.Time
}

type Decision string

const (
	DecisionSkip           Decision = "Skip"
	DecisionUpload         Decision = "Upload"
	DecisionDownload       Decision = "Download"
	DecisionPromptUpload   Decision = "PromptUpload"
	DecisionPromptDownload Decision = "PromptDownload"
)

// Outcome is the per-file result collected for the run summary.
type Outcome struct {
	Path        string
	RemotePath  string
	Decision    Decision
	Confirmed   bool
	Transferred bool
	Tie         bool
	Size        int64
	Detail      string
	Err         error
}

// Status renders the outcome as the single word used in per-file report lines.
func (o *Outcome) Status() string {
	switch {
	case o.Err != nil:
		return "failed"
	case o.Tie:
		return "tie"
	case o.Transferred && o.Decision == DecisionPromptUpload:
		return "uploaded"
	case o.Transferred && o.Decision == DecisionPromptDownload:
		return "downloaded"
	case !o.Confirmed && (o.Decision == DecisionPromptUpload || o.Decision == DecisionPromptDownload):
		return "declined"
	default:
		return "skipped"
	}
}
