package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/naming"
	"github.com/aidanlsb/axon/internal/notes"
	"github.com/aidanlsb/axon/internal/refactor"
	"github.com/aidanlsb/axon/internal/slugs"
	"github.com/aidanlsb/axon/internal/ui"
)

var (
	newTitleFlag string
	newEditFlag  bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a document with a canonical name",
	Long: `Creates a new version 1 document. Each field is turned into a slug
("Dark Mode" becomes dark-mode). Existing files are never overwritten.`,
}

var newFeatCmd = &cobra.Command{
	Use:   "feat <repo> <feature> <type> <variant>",
	Short: "Create a feature document",
	Long: `Creates {repo}.feat.{feature}.{type}.{variant}.v1.md.

Examples:
  axon new feat kittynode "Dark Mode" prd base
  axon new feat kittynode sync spec alt --title "Sync, take two"`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return createDocument(cmd, naming.FeatPattern, []string{"repo", "feature", "type", "variant"}, args)
	},
}

var newSopCmd = &cobra.Command{
	Use:   "sop <repo> <name>",
	Short: "Create a standard operating procedure document",
	Long: `Creates {repo}.sop.{name}.v1.md.

Examples:
  axon new sop kittynode release`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return createDocument(cmd, naming.SopPattern, []string{"repo", "name"}, args)
	},
}

// canonicalName renders pattern with slugified fields and version 1.
func canonicalName(pattern string, fields, args []string) (string, error) {
	p, err := refactor.Compile(pattern)
	if err != nil {
		return "", err
	}
	values := refactor.Values{refactor.NumberPlaceholder: "1"}
	for i, field := range fields {
		slug := slugs.Field(args[i])
		if slug == "" {
			return "", fmt.Errorf("%s %q has no usable characters (fields must start with a letter)", field, args[i])
		}
		values[refactor.Placeholder(field)] = slug
	}

	name := refactor.Render(p, values)
	if !naming.IsValid(name) {
		return "", fmt.Errorf("generated name %s does not follow the naming scheme", name)
	}
	return name, nil
}

func createDocument(cmd *cobra.Command, pattern string, fields, args []string) error {
	name, err := canonicalName(pattern, fields, args)
	if err != nil {
		return handleError(ErrInvalidInput, exitInvalidInput, err, "")
	}

	title := strings.TrimSpace(newTitleFlag)
	if title == "" {
		title = strings.Join(args[1:], " ")
	}
	content := fmt.Sprintf("# %s\n\n", title)

	path := filepath.Join(getDir(), name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return handleErrorMsg(ErrFileExists, exitConflict,
				fmt.Sprintf("%s already exists", name), "Existing documents are never overwritten")
		}
		return handleError(ErrFileWriteError, exitEnvironment, err, "")
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return handleError(ErrFileWriteError, exitEnvironment, err, "")
	}
	if err := f.Close(); err != nil {
		return handleError(ErrFileWriteError, exitEnvironment, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"file": name, "path": path, "title": title}, nil)
		return nil
	}
	fmt.Fprintln(stdout, ui.Success("Created "+ui.FilePath(name)))

	if newEditFlag && isInteractive() {
		if err := notes.OpenInEditor(cmd.Context(), resolveEditor(), path); err != nil {
			return handleError(ErrInternal, exitEnvironment, err, "Set 'editor' in axon.toml or $EDITOR")
		}
	}
	return nil
}

func init() {
	newCmd.PersistentFlags().StringVar(&newTitleFlag, "title", "", "Heading for the new document (defaults to the fields)")
	newCmd.PersistentFlags().BoolVar(&newEditFlag, "edit", false, "Open the new document in your editor")
	newCmd.AddCommand(newFeatCmd)
	newCmd.AddCommand(newSopCmd)
	rootCmd.AddCommand(newCmd)
}
