// Package cli implements the command-line interface.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/config"
	"github.com/aidanlsb/axon/internal/ui"
)

var (
	// Global flags
	dirFlag     string
	configPath  string
	verboseFlag bool

	// Resolved values
	resolvedDir string
	cfg         *config.Config
	logger      = slog.New(slog.NewTextHandler(io.Discard, nil))

	stdout io.Writer     = os.Stdout
	stderr io.Writer     = os.Stderr
	stdin  *bufio.Reader = bufio.NewReader(os.Stdin)
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "axon",
	Short: "Axon - naming discipline for a directory of markdown documents",
	Long: `Axon keeps a flat directory of markdown documents under a canonical naming scheme.
It validates and parses filenames, and renames whole batches of documents from one
filename template to another, with recovery journals for retry and rollback.

Canonical names:
  {repo}.feat.{feature}.{type}.{variant}.v{N}.md
  {repo}.sop.{name}.v{N}.md`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stdout = cmd.OutOrStdout()
		stderr = cmd.ErrOrStderr()
		stdin = bufio.NewReader(cmd.InOrStdin())

		if verboseFlag {
			logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		// Commands that work on a bare filename need no directory or config.
		switch cmd.Name() {
		case "completion", "help", "version", "validate", "parse":
			return nil
		}

		fallback := "."
		if cmd.Name() == "daily" {
			fallback = config.DefaultDailyDir()
		}
		resolvedDir = config.ResolveNotesDir(dirFlag, fallback)

		if cmd.Name() != "daily" {
			info, err := os.Stat(resolvedDir)
			if err != nil || !info.IsDir() {
				return handleErrorMsg(ErrDirNotFound, exitNoMatch,
					fmt.Sprintf("notes directory not found: %s", resolvedDir),
					"Use --dir or set "+config.NotesDirEnv)
			}
		}

		var err error
		cfg, err = loadConfig(resolvedDir)
		if err != nil {
			return handleError(ErrConfigInvalid, exitInvalidInput, err, "")
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		logger.Debug("resolved notes directory", "dir", resolvedDir, "config", configPath)
		return nil
	},
}

// Execute runs the CLI. The returned error carries the process exit code;
// see ExitCode.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(err)
	}
	return err
}

func printError(err error) {
	var exit *exitError
	if errors.As(err, &exit) {
		if exit.reported {
			return
		}
		if msg := exit.Error(); msg != "" {
			fmt.Fprintln(stderr, "Error: "+msg)
		}
		if exit.suggestion != "" {
			fmt.Fprintln(stderr, "\n"+exit.suggestion)
		}
		return
	}
	fmt.Fprintln(stderr, "Error: "+err.Error())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "", "Notes directory (overrides "+config.NotesDirEnv+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default <dir>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log diagnostic details to stderr")
}

// getDir returns the resolved notes directory.
func getDir() string {
	return resolvedDir
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func loadConfig(dir string) (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load(dir)
}
