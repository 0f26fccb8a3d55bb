package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestSetup bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Add profiles from a JSON or YAML file",
	Long: `Merges the profiles in <file> into the collection. Profiles whose
linkedin_url is already present are skipped.

The index is not rebuilt unless --setup is given; until then new profiles
are not used to answer questions.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestSetup, "setup", false, "rebuild the index after ingesting")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	svc, err := ensureServices(cmd)
	if err != nil {
		return err
	}
	if factory == nil {
		return errors.New("profile reader not configured")
	}

	profiles, err := factory.ReadProfiles(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	res := svc.Ingest(cmd.Context(), profiles)
	if !res.Success {
		return errors.New(res.Message)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Message)
	fmt.Fprintf(out, "Accepted %d, skipped %d duplicates.\n", res.Accepted, res.Rejected)

	if !ingestSetup {
		return nil
	}
	setup := svc.Setup(cmd.Context())
	printSetup(cmd, setup)
	if !setup.Success {
		return errors.New(setup.Message)
	}
	return nil
}
