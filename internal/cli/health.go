package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/naming"
	"github.com/aidanlsb/axon/internal/notes"
	"github.com/aidanlsb/axon/internal/ui"
)

var (
	healthStrict bool
	healthQuiet  bool
)

// HealthEntry is one flagged file.
type HealthEntry struct {
	File   string `json:"file"`
	Detail string `json:"detail"`
}

// HealthResult summarizes a directory check.
type HealthResult struct {
	Checked      int           `json:"checked"`
	Valid        int           `json:"valid"`
	Invalid      int           `json:"invalid"`
	Exempt       int           `json:"exempt"`
	Strict       bool          `json:"strict"`
	InvalidFiles []HealthEntry `json:"invalid_files"`
	ExemptFiles  []HealthEntry `json:"exempt_files"`
}

// OK reports whether the directory passes.
func (r HealthResult) OK() bool { return r.Invalid == 0 }

// checkHealth classifies every markdown file in names. In strict mode exempt
// files count as invalid.
func checkHealth(names []string, strict bool) HealthResult {
	r := HealthResult{
		Strict:       strict,
		InvalidFiles: []HealthEntry{},
		ExemptFiles:  []HealthEntry{},
	}
	for _, name := range names {
		if reason := naming.ExemptReason(name); reason != "" {
			r.ExemptFiles = append(r.ExemptFiles, HealthEntry{File: name, Detail: "exempt: " + reason})
			continue
		}
		if naming.IsValid(name) {
			r.Valid++
			continue
		}
		r.InvalidFiles = append(r.InvalidFiles, HealthEntry{
			File:   name,
			Detail: "error: does not match pattern " + naming.FeatPattern,
		})
	}
	r.Exempt = len(r.ExemptFiles)
	r.Checked = r.Valid + len(r.InvalidFiles) + r.Exempt
	r.Invalid = len(r.InvalidFiles)
	if strict {
		r.Invalid += r.Exempt
	}
	return r
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that every document follows the naming scheme",
	Long: `Checks every markdown file in the notes directory against the canonical
filename grammars. Exits with status 1 when any file is invalid.

Examples:
  axon health
  axon health --strict
  axon health --quiet`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := notes.ListMarkdown(getDir())
		if err != nil {
			return handleError(ErrFileReadError, exitEnvironment, err, "")
		}
		r := checkHealth(names, healthStrict)

		if isJSONOutput() {
			outputJSON(Response{OK: r.OK(), Data: r, Meta: &Meta{Count: r.Checked}})
			if !r.OK() {
				return silentExit(exitNoMatch)
			}
			return nil
		}

		flagged := r.InvalidFiles
		if healthStrict {
			flagged = append(flagged, r.ExemptFiles...)
		}

		if healthQuiet {
			for _, e := range flagged {
				fmt.Fprintf(stdout, "%s (%s)\n", e.File, e.Detail)
			}
			if !r.OK() {
				return silentExit(exitNoMatch)
			}
			return nil
		}

		fmt.Fprintf(stdout, "Checking %d markdown files...\n\n", r.Checked)
		fmt.Fprintf(stdout, "Valid: %d files\n", r.Valid)
		fmt.Fprintf(stdout, "Invalid: %d files\n", r.Invalid)
		if !healthStrict {
			fmt.Fprintf(stdout, "Exempt: %d files\n", r.Exempt)
		}

		if len(flagged) > 0 {
			fmt.Fprintln(stdout, "\n"+ui.Header("Invalid files:"))
			for _, e := range flagged {
				fmt.Fprintf(stdout, "  - %s %s\n", ui.FilePath(e.File), ui.Hint("("+e.Detail+")"))
			}
		}
		if !healthStrict && len(r.ExemptFiles) > 0 {
			fmt.Fprintln(stdout, "\n"+ui.Header("Exempt files:"))
			for _, e := range r.ExemptFiles {
				fmt.Fprintf(stdout, "  - %s %s\n", e.File, ui.Hint("("+e.Detail+")"))
			}
		}

		if r.OK() {
			fmt.Fprintln(stdout, "\n"+ui.Success("Health: OK"))
			return nil
		}
		fmt.Fprintln(stdout, "\n"+ui.Error("Health: FAIL"))
		return silentExit(exitNoMatch)
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthStrict, "strict", false, "Treat exempt files as errors")
	healthCmd.Flags().BoolVar(&healthQuiet, "quiet", false, "Only output errors")
	rootCmd.AddCommand(healthCmd)
}
