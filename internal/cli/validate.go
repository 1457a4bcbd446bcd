package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/naming"
	"github.com/aidanlsb/axon/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <filename>",
	Short: "Check one filename against the naming scheme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if reason := naming.ExemptReason(name); reason != "" {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"file": name, "valid": true, "exempt": reason}, nil)
				return nil
			}
			fmt.Fprintf(stdout, "%s\n", ui.Successf("Valid (exempt: %s)", reason))
			return nil
		}

		if !naming.IsValid(name) {
			return handleErrorWithDetails(ErrInvalidFilename, exitNoMatch,
				fmt.Errorf("invalid: does not match pattern %s", naming.FeatPattern),
				"SOP documents use "+naming.SopPattern,
				map[string]string{"file": name})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"file": name, "valid": true}, nil)
			return nil
		}
		fmt.Fprintln(stdout, ui.Success("Valid"))
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <filename>",
	Short: "Break a canonical filename into its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if naming.ExemptReason(name) != "" {
			return handleErrorMsg(ErrExemptFilename, exitNoMatch,
				"invalid: exempt files do not follow the pattern", "")
		}

		parsed, err := naming.Parse(name)
		if err != nil {
			var invalid *naming.InvalidError
			if errors.As(err, &invalid) {
				return handleError(ErrInvalidFilename, exitNoMatch, err, "")
			}
			return handleError(ErrInternal, exitEnvironment, err, "")
		}

		if isJSONOutput() {
			outputSuccess(parsed, nil)
			return nil
		}

		tbl := ui.NewTable(2)
		tbl.AddRow("repo:", parsed.Repo)
		tbl.AddRow("category:", string(parsed.Category))
		if parsed.Category == naming.CategoryFeat {
			tbl.AddRow("feature:", parsed.Feature)
			tbl.AddRow("type:", parsed.Type)
			tbl.AddRow("variant:", parsed.Variant)
		} else {
			tbl.AddRow("name:", parsed.Name)
		}
		tbl.AddRow("version:", fmt.Sprintf("v%d", parsed.Version))
		fmt.Fprint(stdout, tbl.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(parseCmd)
}
