package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lf(hash string, mod time.Time) *LocalFile {
	return &LocalFile{Path: "/notes/a.txt", Size: 10, ModTime: mod, ContentHash: hash}
}

func rf(exists bool, hash string, mod time.Time) *RemoteFile {
	return &RemoteFile{Path: "/box/a.txt", Exists: exists, ContentHash: hash, ModTime: mod}
}

func TestDecide_TableDriven(t *testing.T) {
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		local   *LocalFile
		remote  *RemoteFile
		want    Decision
		wantTie bool
	}{
		{
			name:   "remote absent prompts upload",
			local:  lf("aaaa", base),
			remote: rf(false, "", time.Time{}),
			want:   DecisionPromptUpload,
		},
		{
			name:   "equal hashes skip regardless of timestamps",
			local:  lf("aaaa", base.Add(-time.Hour)),
			remote: rf(true, "aaaa", base),
			want:   DecisionSkip,
		},
		{
			name:   "local older prompts download",
			local:  lf("aaaa", base.Add(-time.Minute)),
			remote: rf(true, "bbbb", base),
			want:   DecisionPromptDownload,
		},
		{
			name:   "local newer prompts upload",
			local:  lf("aaaa", base.Add(time.Minute)),
			remote: rf(true, "bbbb", base),
			want:   DecisionPromptUpload,
		},
		{
			name:    "diverged with equal timestamps is a tie",
			local:   lf("aaaa", base),
			remote:  rf(true, "bbbb", base),
			want:    DecisionSkip,
			wantTie: true,
		},
		{
			name: "sub-second difference does not break the tie",
			// Same whole second, different nanoseconds: the store only keeps
			// second resolution, so this must still compare equal.
			local:   lf("aaaa", base.Add(400*time.Millisecond)),
			remote:  rf(true, "bbbb", base),
			want:    DecisionSkip,
			wantTie: true,
		},
		{
			name:   "absence wins over matching hashes",
			local:  lf("aaaa", base),
			remote: &RemoteFile{Exists: false, ContentHash: "aaaa", ModTime: base},
			want:   DecisionPromptUpload,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, tie := Decide(tc.local, tc.remote)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantTie, tie)
		})
	}
}

func TestDecide_Idempotence(t *testing.T) {
	// After a completed transfer the hashes match, so a second pass with no
	// intervening change always skips.
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	local := lf("cafe", base)
	remote := rf(true, "cafe", base.Add(time.Hour))

	for range 2 {
		got, tie := Decide(local, remote)
		assert.Equal(t, DecisionSkip, got)
		assert.False(t, tie)
	}
}
