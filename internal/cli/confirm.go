package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/axon/internal/ui"
)

// isInteractive is swapped in tests.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

func shouldPromptForConfirm() bool {
	if isJSONOutput() {
		return false
	}
	return isInteractive()
}

func promptForConfirm(message string) bool {
	if message == "" {
		message = "Apply changes?"
	}
	fmt.Fprintf(stdout, "%s %s ", message, ui.Hint("[y/N]"))
	response, _ := stdin.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// promptForValue asks for a line of input. An empty answer yields def.
func promptForValue(message, def string) string {
	if def != "" {
		fmt.Fprintf(stdout, "%s %s ", message, ui.Hint("["+def+"]"))
	} else {
		fmt.Fprintf(stdout, "%s ", message)
	}
	response, _ := stdin.ReadString('\n')
	response = strings.TrimSpace(response)
	if response == "" {
		return def
	}
	return response
}
