package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/notes"
	"github.com/aidanlsb/axon/internal/ui"
)

var dailyNoEdit bool

// nowFunc is swapped in tests.
var nowFunc = time.Now

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Open or create today's daily note",
	Long: `Creates today's daily note (daily.YYYY.MM.DD.md) if it doesn't exist, then opens
it in your editor.

The note lives in --dir, $AXON_NOTES_DIR, or ~/notes. Its initial content comes
from the first [schemas] glob in axon.toml that matches the filename, or a small
frontmatter block when none does.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, created, err := notes.CreateDaily(getDir(), getConfig(), nowFunc())
		if err != nil {
			return handleError(ErrFileWriteError, exitEnvironment, err, "")
		}
		logger.Debug("daily note", "path", path, "created", created)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "created": created}, nil)
			return nil
		}

		if created {
			fmt.Fprintln(stdout, ui.Success("Created: "+ui.FilePath(path)))
		} else {
			fmt.Fprintf(stdout, "Today's note: %s\n", ui.FilePath(path))
		}

		if dailyNoEdit || !isInteractive() {
			return nil
		}
		if err := notes.OpenInEditor(cmd.Context(), resolveEditor(), path); err != nil {
			return handleError(ErrInternal, exitEnvironment, err, "Set 'editor' in axon.toml or $EDITOR")
		}
		return nil
	},
}

func init() {
	dailyCmd.Flags().BoolVar(&dailyNoEdit, "no-edit", false, "Create the note without opening an editor")
	rootCmd.AddCommand(dailyCmd)
}
