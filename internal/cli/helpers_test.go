package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/axon/internal/config"
	"github.com/aidanlsb/axon/internal/testutil"
)

// runCLI executes the command tree in-process and returns stdout and the
// exit code. Flag values persist on package variables between runs, so they
// are reset to their defaults first.
func runCLI(t *testing.T, args ...string) (string, int) {
	t.Helper()
	return execCLI(t, "", false, args...)
}

// runInteractive runs the CLI as if attached to a terminal, answering
// prompts from input.
func runInteractive(t *testing.T, input string, args ...string) (string, int) {
	t.Helper()
	return execCLI(t, input, true, args...)
}

func execCLI(t *testing.T, input string, interactive bool, args ...string) (string, int) {
	t.Helper()
	resetCommandState(t, interactive)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute(context.Background())
	if err != nil {
		t.Logf("stderr: %s", errOut.String())
	}
	return out.String(), ExitCode(err)
}

// runner adapts runCLI for testutil.NotesDir.RunCLI.
func runner(t *testing.T) testutil.Runner {
	return func(args ...string) (string, int) {
		t.Helper()
		return runCLI(t, args...)
	}
}

func resetCommandState(t *testing.T, interactive bool) {
	t.Helper()
	t.Setenv(config.NotesDirEnv, "")

	resetFlags(rootCmd)
	resolvedDir = ""
	cfg = nil

	prevInteractive := isInteractive
	isInteractive = func() bool { return interactive }
	t.Cleanup(func() { isInteractive = prevInteractive })
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
