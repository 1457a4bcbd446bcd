package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/naming"
	"github.com/aidanlsb/axon/internal/notes"
	"github.com/aidanlsb/axon/internal/ui"
)

var (
	listRepo    string
	listFeature string
	listType    string
	listVariant string
	listTitles  bool
)

// ListItem is one listed document.
type ListItem struct {
	File  string `json:"file"`
	Title string `json:"title,omitempty"`
}

// ListResult is the JSON payload of list.
type ListResult struct {
	Files []ListItem `json:"files"`
}

type listFilter struct {
	repo, feature, docType, variant string
}

// match applies the filters. Feature, type and variant filters only match
// feat documents.
func (f listFilter) match(p *naming.Parsed) bool {
	if f.repo != "" && p.Repo != f.repo {
		return false
	}
	if f.feature != "" && p.Feature != f.feature {
		return false
	}
	if f.docType != "" && p.Type != f.docType {
		return false
	}
	if f.variant != "" && p.Variant != f.variant {
		return false
	}
	return true
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List canonical documents, optionally filtered by field",
	Long: `Lists the documents whose names follow the canonical grammars, sorted by name.

Examples:
  axon list
  axon list --repo kittynode --type prd
  axon list --titles`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getDir()
		names, err := notes.ListMarkdown(dir)
		if err != nil {
			return handleError(ErrFileReadError, exitEnvironment, err, "")
		}

		filter := listFilter{repo: listRepo, feature: listFeature, docType: listType, variant: listVariant}
		items := []ListItem{}
		var warnings []Warning
		for _, name := range names {
			parsed, err := naming.Parse(name)
			if err != nil || !filter.match(parsed) {
				continue
			}
			item := ListItem{File: name}
			if listTitles {
				title, err := notes.ReadTitle(dir, name)
				if err != nil {
					warnings = append(warnings, Warning{Code: WarnTitleRead, Message: fmt.Sprintf("%s: %v", name, err)})
				}
				item.Title = title
			}
			items = append(items, item)
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(ListResult{Files: items}, warnings, &Meta{Count: len(items)})
			return nil
		}

		if !listTitles {
			for _, item := range items {
				fmt.Fprintln(stdout, item.File)
			}
			return nil
		}
		tbl := ui.NewTable(2)
		for _, item := range items {
			tbl.AddRow(item.File, ui.Hint(item.Title))
		}
		fmt.Fprint(stdout, tbl.String())
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listRepo, "repo", "", "Filter by repository")
	listCmd.Flags().StringVar(&listFeature, "feature", "", "Filter by feature")
	listCmd.Flags().StringVar(&listType, "type", "", "Filter by type")
	listCmd.Flags().StringVar(&listVariant, "variant", "", "Filter by variant")
	listCmd.Flags().BoolVar(&listTitles, "titles", false, "Show each document's title")
	rootCmd.AddCommand(listCmd)
}
