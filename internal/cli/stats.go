package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/naming"
	"github.com/aidanlsb/axon/internal/notes"
	"github.com/aidanlsb/axon/internal/ui"
)

// StatsResult counts documents by field. Type and variant counts cover feat
// documents only.
type StatsResult struct {
	Total      int            `json:"total"`
	Valid      int            `json:"valid"`
	Exempt     int            `json:"exempt"`
	Invalid    int            `json:"invalid"`
	ByRepo     map[string]int `json:"by_repo"`
	ByCategory map[string]int `json:"by_category"`
	ByType     map[string]int `json:"by_type"`
	ByVariant  map[string]int `json:"by_variant"`
}

func collectStats(names []string) StatsResult {
	s := StatsResult{
		ByRepo:     map[string]int{},
		ByCategory: map[string]int{},
		ByType:     map[string]int{},
		ByVariant:  map[string]int{},
	}
	for _, name := range names {
		if naming.ExemptReason(name) != "" {
			s.Exempt++
			continue
		}
		parsed, err := naming.Parse(name)
		if err != nil {
			s.Invalid++
			continue
		}
		s.Valid++
		s.ByRepo[parsed.Repo]++
		s.ByCategory[string(parsed.Category)]++
		if parsed.Category == naming.CategoryFeat {
			s.ByType[parsed.Type]++
			s.ByVariant[parsed.Variant]++
		}
	}
	s.Total = s.Valid + s.Invalid + s.Exempt
	return s
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document counts by repo, type and variant",
	Long: `Displays counts of the documents in the notes directory.

Examples:
  axon stats
  axon stats --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := notes.ListMarkdown(getDir())
		if err != nil {
			return handleError(ErrFileReadError, exitEnvironment, err, "")
		}
		s := collectStats(names)

		if isJSONOutput() {
			outputSuccess(s, &Meta{Count: s.Total})
			return nil
		}

		summary := fmt.Sprintf("Files: %d total (%d valid, %d exempt", s.Total, s.Valid, s.Exempt)
		if s.Invalid > 0 {
			summary += fmt.Sprintf(", %d invalid", s.Invalid)
		}
		fmt.Fprintln(stdout, ui.Header(summary+")"))
		fmt.Fprintln(stdout)

		printCounts("By repo", s.ByRepo)
		printCounts("By category", s.ByCategory)
		printCounts("By type", s.ByType)
		printCounts("By variant", s.ByVariant)
		return nil
	},
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(stdout, title+":")
	tbl := ui.NewTable(2)
	for _, k := range keys {
		tbl.AddRow(k+":", ui.Accent.Render(fmt.Sprintf("%d", counts[k]))+" files")
	}
	fmt.Fprint(stdout, tbl.Indented("  "))
	fmt.Fprintln(stdout)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
