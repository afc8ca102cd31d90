// Package cli is the taskdesk command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"taskdesk/internal/config"
	"taskdesk/internal/notify"
	"taskdesk/internal/server"
)

var (
	verbose bool
	cfg     *config.Config
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskdesk",
		Short: "taskdesk - client for the team task tracker",
		Long: `taskdesk talks to the team task tracker on behalf of one user.

Run "taskdesk serve" for the local web surface, or use the subcommands directly.`,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(exportCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	// The console writer goes first so config loading logs through it.
	configureLogging(os.Stderr)
	cfg = config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

// configureLogging sends the global logger to out in console format at
// info level until the configured level is known.
func configureLogging(out io.Writer) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out: out, TimeFormat: time.DateTime,
	}).With().Timestamp().Caller().Logger()
}

// openApp connects to the credential store and restores the session.
func openApp(ctx context.Context) (*server.App, error) {
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := app.Session.Initialize(ctx); err != nil {
		log.Err(err).Msg("error restoring session")
	}
	return app, nil
}

// requireSession opens the app and fails when nobody is logged in.
func requireSession(ctx context.Context) (*server.App, error) {
	app, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	if !app.Session.Snapshot().Authenticated() {
		_ = app.Close()
		return nil, fmt.Errorf("not logged in, run \"taskdesk login\" first")
	}
	return app, nil
}

func printer(cmd *cobra.Command) notify.Printer {
	return notify.Printer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}
