package sync

import "time"

// Decide compares a local file against its remote counterpart and picks one
// action. It is pure: no I/O, no clock reads. The second return reports an
// unresolvable tie: content diverged but the timestamps give no direction, so
// the file is skipped rather than guessed at.
//
// The rules are ordered. Absence is checked before hashes so that a first-ever
// upload is always routed through the prompt, and hash equality wins over any
// timestamp difference since identical content needs no transfer. Timestamps
// are compared at whole-second resolution, matching the store's
// client-modified encoding.
func Decide(local *LocalFile, remote *RemoteFile) (Decision, bool) {
	if !remote.Exists {
		return DecisionPromptUpload, false
	}

	if local.ContentHash == remote.ContentHash {
		return DecisionSkip, false
	}

	localSec := local.ModTime.Truncate(time.Second)
	remoteSec := remote.ModTime.Truncate(time.Second)

	switch {
	case localSec.Before(remoteSec):
		return DecisionPromptDownload, false
	case remoteSec.Before(localSec):
		return DecisionPromptUpload, false
	}

	// Diverged content, equal timestamps. There is no safe direction to pick,
	// so leave both sides alone and flag the tie for the operator.
	return DecisionSkip, true
}
