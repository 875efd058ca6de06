package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafbgarcia/approutes"
	"github.com/rafbgarcia/approutes/internal/config"
)

// options is shared by every subcommand. cfg and logger are filled in by
// the root command before a subcommand runs.
type options struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *approutes.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "approutes",
		Short:         "Compile a folder of pages, layouts and error files into router records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			opts.logger = approutes.NewLogger(cmd.ErrOrStderr(), level)

			// init creates the config file, so there is nothing to load yet.
			if cmd.Name() == "init" {
				return nil
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				opts.logger.Debug("using config file", "path", cfg.File)
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is ./approutes.yaml, can also use APPROUTES_CONFIG_FILE)")
	root.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateCmd(opts),
		newPrintCmd(opts),
		newServeCmd(opts),
		newInitCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// fmtDuration formats a duration as a human-friendly string (e.g. "12ms", "1.3s").
func fmtDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
