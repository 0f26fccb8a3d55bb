package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and backend state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	svc, err := ensureServices(cmd)
	if err != nil {
		return err
	}

	st := svc.Status(cmd.Context())
	if statusJSON {
		return printJSON(cmd, st)
	}

	ready := "not ready (run 'profilerag setup')"
	if st.Ready {
		ready = "ready"
		if st.Stale {
			ready = "ready, stale (run 'profilerag setup' to include new profiles)"
		}
	}
	generation := "fallback answers only"
	if st.Generation {
		generation = st.LLMModel
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Profiles:   %d\n", st.Profiles)
	fmt.Fprintf(out, "Chunks:     %d\n", st.Chunks)
	fmt.Fprintf(out, "Index:      %s\n", ready)
	fmt.Fprintf(out, "Store:      %s\n", orNone(st.Store))
	fmt.Fprintf(out, "Embeddings: %s\n", orNone(st.EmbeddingModel))
	fmt.Fprintf(out, "Generation: %s\n", generation)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
