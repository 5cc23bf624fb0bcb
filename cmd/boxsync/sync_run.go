package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/boxsync/boxsync/internal/config"
	"github.com/boxsync/boxsync/internal/store"
	syncer "github.com/boxsync/boxsync/internal/sync"
)

// runSync performs the single synchronization pass. The process exits 0 as
// long as the pass itself completed, regardless of per-file skips, declines,
// or failures.
func runSync(ctx context.Context, cfg *config.Config, token *store.Token, assumeYes bool) error {
	showHeader()

	client, err := store.New(cfg.ServerURL, token, cfg.TokenPath)
	if err != nil {
		return err
	}
	defer client.Close()

	confirm := syncer.TTYConfirm(os.Stdin, os.Stdout)
	if assumeYes {
		confirm = syncer.AlwaysConfirm
	}

	runner := syncer.NewRunner(client, cfg.RemoteDir, confirm)
	runner.Report = printOutcome

	outcomes := runner.Run(ctx, cfg.Files)
	if ctx.Err() != nil {
		fmt.Println(yellow.Render("Interrupted, remaining files were not reconciled."))
	}

	printSummary(outcomes)
	return nil
}

func printOutcome(o *syncer.Outcome) {
	var line string
	switch o.Status() {
	case "uploaded":
		line = fmt.Sprintf("%s  %s -> %s (%s)", green.Render("uploaded"), o.Path, o.RemotePath, humanize.Bytes(uint64(o.Size)))
	case "downloaded":
		line = fmt.Sprintf("%s  %s -> %s", green.Render("downloaded"), o.RemotePath, o.Path)
	case "declined":
		line = fmt.Sprintf("%s  %s", yellow.Render("declined"), o.Path)
	case "failed":
		line = fmt.Sprintf("%s  %s: %s", red.Render("failed"), o.Path, o.Err)
	case "tie":
		line = fmt.Sprintf("%s  %s: %s", yellow.Render("tie"), o.Path, o.Detail)
	default:
		line = fmt.Sprintf("%s  %s", gray.Render("skipped"), o.Path)
		if o.Detail != "" {
			line += gray.Render(" (" + o.Detail + ")")
		}
	}
	fmt.Println(line)
}

func printSummary(outcomes []*syncer.Outcome) {
	counts := map[string]int{}
	for _, o := range outcomes {
		counts[o.Status()]++
	}

	fmt.Printf("\n%d files: %d uploaded, %d downloaded, %d skipped, %d declined, %d ties, %d failed\n",
		len(outcomes),
		counts["uploaded"],
		counts["downloaded"],
		counts["skipped"],
		counts["declined"],
		counts["tie"],
		counts["failed"],
	)
}
