package cli

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/axon/internal/config"
	"github.com/aidanlsb/axon/internal/ui"
)

// resolveEditor returns the editor command. When none is configured and a
// terminal is attached, the user picks one and it is saved to axon.toml.
func resolveEditor() string {
	c := getConfig()
	if c.HasEditor() || !shouldPromptForConfirm() {
		return c.GetEditor()
	}

	editor := promptForValue("No editor configured. Editor command:", c.GetEditor())
	c.Editor = editor

	path := strings.TrimSpace(configPath)
	var err error
	if path == "" {
		path = config.Path(getDir())
		err = config.Save(getDir(), c)
	} else {
		err = config.SaveTo(path, c)
	}
	if err != nil {
		fmt.Fprintln(stdout, ui.Warningf("Could not save editor: %v", err))
		return editor
	}
	logger.Debug("saved editor", "editor", editor, "config", path)
	fmt.Fprintln(stdout, ui.Hint("Saved editor to "+path))
	return editor
}
