package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driving"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the profiles",
	Long: `Answers a natural-language question using the profiles most relevant to it.

With no question argument, questions are read one per line from stdin. On a
terminal this is an interactive prompt; type 'exit' or press Ctrl-D to stop.

The index is built automatically if setup has not run in this process.

Examples:
  profilerag ask "Who has Python skills?"
  profilerag ask --json "Who knows machine learning?"
  cat questions.txt | profilerag ask`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := ensureServices(cmd)
	if err != nil {
		return err
	}
	if err := ensureReady(cmd, svc); err != nil {
		return err
	}

	if len(args) > 0 {
		res := svc.Ask(cmd.Context(), strings.Join(args, " "))
		if err := printAnswer(cmd, res); err != nil {
			return err
		}
		if !res.Success {
			return errors.New(res.Message)
		}
		return nil
	}

	return askLines(cmd, svc, cmd.InOrStdin())
}

// askLines answers each non-blank line of in until EOF or "exit".
func askLines(cmd *cobra.Command, svc driving.ProfileService, in io.Reader) error {
	interactive := isTerminal(in)
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(cmd.OutOrStdout(), "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if interactive && (line == "exit" || line == "quit") {
			return nil
		}
		if !interactive && !askJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "Q: %s\n", line)
		}
		if err := printAnswer(cmd, svc.Ask(cmd.Context(), line)); err != nil {
			return err
		}
		if err := cmd.Context().Err(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read questions: %w", err)
	}
	return nil
}

func printAnswer(cmd *cobra.Command, res domain.AskResult) error {
	if askJSON {
		return printJSON(cmd, res)
	}

	out := cmd.OutOrStdout()
	if !res.Success {
		fmt.Fprintln(out, res.Message)
		return nil
	}
	fmt.Fprintln(out, res.Answer.Text)
	fmt.Fprintln(out)
	for _, w := range res.Answer.Warnings {
		cmd.PrintErrf("warning: %s\n", w)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
