package sync

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConfirmFunc asks the operator a yes/no question before a destructive
// transfer. defaultYes is the answer taken on a bare Enter.
type ConfirmFunc func(prompt string, defaultYes bool) bool

// TTYConfirm reads answers line-wise from in, writing prompts to out.
func TTYConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string, defaultYes bool) bool {
		hint := "[Y/n]"
		if !defaultYes {
			hint = "[y/N]"
		}
		fmt.Fprintf(out, "%s %s ", prompt, hint)

		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

// AlwaysConfirm answers yes to every prompt. Used for --yes runs.
func AlwaysConfirm(string, bool) bool {
	return true
}
