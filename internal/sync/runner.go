package sync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/boxsync/boxsync/internal/blockhash"
	"github.com/boxsync/boxsync/internal/store"
)

// RemoteStore is the slice of the box server client the runner needs.
type RemoteStore interface {
	GetMetadata(ctx context.Context, remotePath string) (*store.Metadata, error)
	Upload(ctx context.Context, remotePath string, localPath string, clientModified time.Time) (*store.Metadata, error)
	Download(ctx context.Context, remotePath string, localPath string) error
}

// Runner reconciles each configured file against the remote store, strictly in
// the given order. Files are independent: a failure or a declined prompt never
// aborts the rest of the run.
type Runner struct {
	store     RemoteStore
	remoteDir string
	confirm   ConfirmFunc

	// Report, when set, is called with each outcome as soon as the file is
	// done, in processing order.
	Report func(*Outcome)
}

func NewRunner(remote RemoteStore, remoteDir string, confirm ConfirmFunc) *Runner {
	return &Runner{
		store:     remote,
		remoteDir: remoteDir,
		confirm:   confirm,
	}
}

// RemotePath maps a local path into the configured remote directory. Only the
// basename is kept, flattening all configured files into one directory.
func (r *Runner) RemotePath(localPath string) string {
	return strings.TrimSuffix(r.remoteDir, "/") + "/" + filepath.Base(localPath)
}

// Run reconciles every path in order and returns one outcome per path. It
// stops early only when ctx is canceled.
func (r *Runner) Run(ctx context.Context, files []string) []*Outcome {
	outcomes := make([]*Outcome, 0, len(files))

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		outcome := r.syncOne(ctx, path)
		outcomes = append(outcomes, outcome)

		slog.Debug("sync",
			"path", outcome.Path,
			"remote", outcome.RemotePath,
			"decision", outcome.Decision,
			"status", outcome.Status(),
			"transferred", outcome.Transferred,
		)

		if r.Report != nil {
			r.Report(outcome)
		}
	}

	return outcomes
}

func (r *Runner) syncOne(ctx context.Context, localPath string) *Outcome {
	outcome := &Outcome{
		Path:       localPath,
		RemotePath: r.RemotePath(localPath),
	}

	meta, err := r.store.GetMetadata(ctx, outcome.RemotePath)
	if err != nil {
		outcome.Err = fmt.Errorf("remote metadata: %w", err)
		return outcome
	}

	remote := &RemoteFile{
		Path:        meta.Path,
		Exists:      meta.Exists,
		ContentHash: meta.ContentHash,
		ModTime:     meta.ClientModified,
	}

	info, err := os.Stat(localPath)
	if os.IsNotExist(err) {
		// Nothing to upload. Surrounding tooling guarantees the configured
		// files exist, so absence is only worth a diagnostic.
		outcome.Decision = DecisionSkip
		outcome.Detail = "local file missing"
		return outcome
	}
	if err != nil {
		outcome.Err = fmt.Errorf("stat local: %w", err)
		return outcome
	}

	hash, err := blockhash.Sum(localPath)
	if err != nil {
		outcome.Err = fmt.Errorf("hash local: %w", err)
		return outcome
	}

	local := &LocalFile{
		Path:        localPath,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentHash: hash,
	}
	outcome.Size = local.Size

	decision, tie := Decide(local, remote)
	outcome.Decision = decision
	outcome.Tie = tie
	if tie {
		outcome.Detail = "content diverged with equal timestamps, not guessing a direction"
	}

	switch decision {
	case DecisionSkip:
		return outcome

	case DecisionPromptUpload, DecisionUpload:
		if decision == DecisionPromptUpload {
			prompt := fmt.Sprintf("Upload %s -> %s?", localPath, outcome.RemotePath)
			if !r.confirm(prompt, true) {
				return outcome
			}
		}
		outcome.Confirmed = true

		clientModified := local.ModTime.Truncate(time.Second).UTC()
		if _, err := r.store.Upload(ctx, outcome.RemotePath, localPath, clientModified); err != nil {
			outcome.Err = fmt.Errorf("upload: %w", err)
			return outcome
		}
		outcome.Transferred = true

	case DecisionPromptDownload, DecisionDownload:
		if decision == DecisionPromptDownload {
			prompt := fmt.Sprintf("Download %s -> %s?", outcome.RemotePath, localPath)
			if !r.confirm(prompt, true) {
				return outcome
			}
		}
		outcome.Confirmed = true

		if err := r.store.Download(ctx, outcome.RemotePath, localPath); err != nil {
			outcome.Err = fmt.Errorf("download: %w", err)
			return outcome
		}
		outcome.Transferred = true
	}

	return outcome
}
