package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show profile count and top skills",
	Long: `Counts the profiles in the collection and how many mention each tracked
skill, most common first.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	svc, err := ensureServices(cmd)
	if err != nil {
		return err
	}

	res := svc.Summary(cmd.Context())
	if !res.Success {
		return errors.New(res.Message)
	}
	if summaryJSON {
		return printJSON(cmd, res.Summary)
	}

	out := cmd.OutOrStdout()
	s := res.Summary
	if s.Error != "" {
		fmt.Fprintln(out, s.Error)
		return nil
	}

	fmt.Fprintf(out, "Total profiles: %d\n", s.TotalProfiles)
	if len(s.TopSkills) == 0 {
		fmt.Fprintln(out, "No tracked skills found.")
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Top skills:")
	for _, sc := range s.TopSkills {
		fmt.Fprintf(out, "  %-18s %d\n", sc.Skill, sc.Count)
	}
	return nil
}
