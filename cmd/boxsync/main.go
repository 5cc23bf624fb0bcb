package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/boxsync/boxsync/internal/config"
	"github.com/boxsync/boxsync/internal/store"
	"github.com/boxsync/boxsync/internal/version"
)

var (
	home, _        = os.UserHomeDir()
	configFileName = "config"
)

var rootCmd = &cobra.Command{
	Use:     "boxsync",
	Short:   "Reconcile a fixed set of local files with the box server",
	Long:    "boxsync runs one synchronization pass over the configured files, deciding per file whether to upload, download, or skip, and asking before any overwrite.",
	Version: version.Detailed(),
	Args:    cobra.ArbitraryArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			Path:      viper.ConfigFileUsed(),
			Files:     viper.GetStringSlice("files"),
			RemoteDir: viper.GetString("remote_dir"),
			ServerURL: viper.GetString("server_url"),
			TokenPath: viper.GetString("token_path"),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// config is good, errors past this point are per-file
		cmd.SilenceUsage = true

		token, err := ensureToken(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		return runSync(cmd.Context(), cfg, token, yes)
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringSliceP("file", "f", nil, "local file to sync (repeatable)")
	rootCmd.Flags().StringP("remote-dir", "r", config.DefaultRemoteDir, "remote directory the files map into")
	rootCmd.Flags().StringP("server", "s", config.DefaultServerURL, "box server url")
	rootCmd.Flags().BoolP("yes", "y", false, "answer yes to every transfer prompt")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "boxsync config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
}

func main() {
	// .env is optional and only feeds BOXSYNC_* overrides
	_ = godotenv.Load()

	level := slog.LevelInfo
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			level = slog.LevelDebug
		}
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		viper.SetConfigFile(cmd.Flag("config").Value.String())
	} else {
		viper.AddConfigPath(filepath.Join(home, ".boxsync"))
		viper.AddConfigPath(filepath.Join(home, ".config/boxsync"))
		viper.SetConfigName(configFileName)
		viper.SetConfigType("json")
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.BindPFlag("files", cmd.Flags().Lookup("file"))
	viper.BindPFlag("remote_dir", cmd.Flags().Lookup("remote-dir"))
	viper.BindPFlag("server_url", cmd.Flags().Lookup("server"))

	viper.SetEnvPrefix("BOXSYNC")
	viper.AutomaticEnv()

	return nil
}

// ensureToken loads the credential file, falling back to the interactive
// login bootstrap when no token exists yet. A failed or aborted bootstrap is
// fatal to the run.
func ensureToken(ctx context.Context, cfg *config.Config) (*store.Token, error) {
	token, err := store.LoadToken(cfg.TokenPath)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, store.ErrNoToken) {
		return nil, err
	}

	fmt.Println(yellow.Render("No credential found, starting login."))
	if err := runLogin(ctx, cfg.ServerURL, cfg.TokenPath); err != nil {
		return nil, fmt.Errorf("credential bootstrap: %w", err)
	}

	return store.LoadToken(cfg.TokenPath)
}

func showHeader() {
	fmt.Println(cyan.Bold(true).Render(version.ShortWithApp()))
}
