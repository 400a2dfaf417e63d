package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-roster/internal/editor"
	"github.com/aanand-mishra/student-roster/internal/roster"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "text" | "json" | "yaml"
	Verbose    bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the roster CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "roster",
		Short:         "Student roster editor",
		Long:          "Create, edit, delete and list student records kept in a local key-value slot.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to the configuration YAML file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return execute(NewRootCommand())
}

// execute runs cmd. Rejected input (a failed validation or a duplicate id)
// has already been shown to the user as a notification, so only other
// errors are printed.
func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if !editor.IsValidationError(err) && !roster.IsUserError(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
	}
	return 1
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON at DEBUG. Production (prod): JSON at INFO.
//
// quiet raises the level to WARN; one-shot commands use it so their
// output is not buried under request logs.
func setupLogger(env string, w io.Writer, quiet bool) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	var level slog.Level
	switch env {
	case "prod":
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	switch env {
	case "prod", "staging":
		return slog.New(slog.NewJSONHandler(w, opts))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, opts))
	}
}
