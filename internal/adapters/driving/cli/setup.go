package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

var setupJSON bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Load profiles and build the semantic index",
	Long: `Loads the profile collection, splits it into chunks, embeds every chunk
and stores the vectors in the first index store that accepts them.

Setup must run before questions can be answered. Running it again rebuilds
the index from scratch, picking up any newly ingested profiles.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	svc, err := ensureServices(cmd)
	if err != nil {
		return err
	}

	res := svc.Setup(cmd.Context())
	if setupJSON {
		if err := printJSON(cmd, res); err != nil {
			return err
		}
	} else {
		printSetup(cmd, res)
	}

	if !res.Success {
		return errors.New(res.Message)
	}
	return nil
}

func printSetup(cmd *cobra.Command, res domain.SetupResult) {
	for _, a := range res.Store.Attempts {
		cmd.PrintErrf("Skipped store %s: %s\n", a.Name, a.Error)
	}
	if !res.Success {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Message)
	fmt.Fprintf(out, "Indexed %d profiles as %d chunks in %s.\n", res.Profiles, res.Chunks, res.Store.Chosen)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
