package notes

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// OpenInEditor runs editor on path attached to the current terminal and
// waits for it to exit. Editors given with arguments (e.g. "code --wait")
// are run through sh.
func OpenInEditor(ctx context.Context, editor, path string) error {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return fmt.Errorf("no editor configured")
	}

	var cmd *exec.Cmd
	if strings.Contains(editor, " ") {
		cmd = exec.CommandContext(ctx, "sh", "-c", editor+" "+shellQuote(path))
	} else {
		cmd = exec.CommandContext(ctx, editor, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor '%s': %w", editor, err)
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
