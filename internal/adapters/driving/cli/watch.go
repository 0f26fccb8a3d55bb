package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index whenever the profile file changes",
	Long: `Runs setup once, then watches the profile collection file and runs setup
again each time it changes. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce,
		"quiet period before a change triggers setup")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	svc, err := ensureServices(cmd)
	if err != nil {
		return err
	}
	if profilesPath == "" {
		return errors.New("profile file path not configured")
	}

	w, err := watch.New(profilesPath, watchDebounce)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	printSetup(cmd, svc.Setup(ctx))

	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s for changes...\n", w.Path())

	for ev := range events {
		if ev.Removed() {
			fmt.Fprintf(out, "%s was removed; rebuilding with an empty collection\n", ev.Path)
		} else {
			fmt.Fprintf(out, "%s changed; rebuilding index\n", ev.Path)
		}
		res := svc.Setup(ctx)
		printSetup(cmd, res)
		if !res.Success {
			cmd.PrintErrf("setup failed: %s\n", res.Message)
		}
	}
	return nil
}
