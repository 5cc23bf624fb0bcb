package sync

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTTYConfirm_Answers(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "bare enter takes default yes", input: "\n", defaultYes: true, want: true},
		{name: "bare enter takes default no", input: "\n", defaultYes: false, want: false},
		{name: "explicit yes", input: "y\n", defaultYes: false, want: true},
		{name: "explicit yes word", input: "YES\n", defaultYes: false, want: true},
		{name: "explicit no", input: "n\n", defaultYes: true, want: false},
		{name: "garbage is no", input: "whatever\n", defaultYes: true, want: false},
		{name: "closed input is no", input: "", defaultYes: true, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out strings.Builder
			confirm := TTYConfirm(strings.NewReader(tc.input), &out)
			got := confirm("Upload a.txt?", tc.defaultYes)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "Upload a.txt?")
		})
	}
}

func TestTTYConfirm_DefaultHint(t *testing.T) {
	var out strings.Builder
	confirm := TTYConfirm(strings.NewReader("\n"), &out)
	confirm("Download?", true)
	assert.Contains(t, out.String(), "[Y/n]")
}

func TestAlwaysConfirm(t *testing.T) {
	assert.True(t, AlwaysConfirm("anything", false))
}
