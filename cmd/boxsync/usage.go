package main

import (
	"github.com/spf13/cobra"

	"github.com/boxsync/boxsync/internal/version"
)

func init() {
	rootCmd.AddCommand(newUsageCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// newUsageCmd prints a one-line usage summary and exits without touching the
// network. Kept as a plain subcommand for compatibility with scripts that
// invoke `boxsync usage`.
func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Print a short usage line",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("usage: boxsync [usage|login|version] - run one sync pass over the configured files (see 'boxsync --help')")
		},
	}
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				cmd.Println(version.ShortWithApp())
				return
			}
			cmd.Println(version.DetailedWithApp())
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print the short version only")
	return cmd
}
