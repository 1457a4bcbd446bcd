package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/notes"
	"github.com/aidanlsb/axon/internal/ui"
)

var readRawFlag bool

// FileResult is the JSON payload of read.
type FileResult struct {
	File      string `json:"file"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	LineCount int    `json:"line_count"`
}

var readCmd = &cobra.Command{
	Use:   "read <name>",
	Short: "Render a document in the terminal",
	Long: `Reads a document from the notes directory and renders its markdown.
The ".md" extension may be omitted.

Examples:
  axon read kittynode.feat.sync.prd.base.v1
  axon read README.md --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if strings.ContainsAny(name, `/\`) {
			return handleErrorMsg(ErrInvalidInput, exitInvalidInput,
				fmt.Sprintf("expected a filename, got a path: %s", name), "")
		}
		if !strings.HasSuffix(name, ".md") {
			name += ".md"
		}

		content, err := os.ReadFile(filepath.Join(getDir(), name))
		if err != nil {
			if os.IsNotExist(err) {
				return handleErrorMsg(ErrFileNotFound, exitNoMatch, fmt.Sprintf("file not found: %s", name), "Run 'axon list' to see documents")
			}
			return handleError(ErrFileReadError, exitEnvironment, err, "")
		}

		lineCount := strings.Count(string(content), "\n")
		if len(content) > 0 && content[len(content)-1] != '\n' {
			lineCount++ // Account for last line without newline
		}

		if isJSONOutput() {
			outputSuccess(FileResult{
				File:      name,
				Title:     notes.Title(string(content)),
				Content:   string(content),
				LineCount: lineCount,
			}, nil)
			return nil
		}

		if readRawFlag {
			fmt.Fprint(stdout, string(content))
			return nil
		}

		rendered, err := ui.RenderMarkdown(string(content), ui.TermWidth())
		if err != nil {
			return handleError(ErrInternal, exitEnvironment, err, "Use --raw to print the file as is")
		}
		fmt.Fprint(stdout, rendered)
		return nil
	},
}

func init() {
	readCmd.Flags().BoolVar(&readRawFlag, "raw", false, "Output raw file content without rendering")
	rootCmd.AddCommand(readCmd)
}
