package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change profilerag configuration stored in config.toml.

Environment variables prefixed with PROFILERAG_ override file values at
runtime; 'config show' lists the file contents only.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all configured keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Integers, decimals and true/false are stored
with their type; lists such as index.stores are comma separated.

Examples:
  profilerag config set profiles.path ./profiles.json
  profilerag config set index.top_k 5
  profilerag config set index.stores sqlite,memory
  profilerag config set llm.openai.model gpt-4o-mini`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long:  `Choose the embedding provider used to index profiles and check that it responds.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigEmbedding,
}

var configLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider",
	Long:  `Choose the language model used to write answers and check that it responds.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigLLM,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEmbeddingCmd)
	configCmd.AddCommand(configLLMCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", store.Path())

	keys := store.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(out, "(no values set; defaults apply)")
		return nil
	}
	for _, k := range keys {
		v, _ := store.Get(k)
		fmt.Fprintf(out, "%s = %s\n", k, displayValue(k, v))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}
	v, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), displayValue(args[0], v))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}
	key, value := args[0], parseValue(args[1])
	if err := store.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, displayValue(key, value))
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}
	if _, ok := store.Get(args[0]); !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	if err := store.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to remove %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), store.Path())
	return nil
}

func runConfigEmbedding(cmd *cobra.Command, _ []string) error {
	return configureProvider(cmd, providerSection{
		name:      "embedding",
		title:     "Embedding",
		providers: domain.AllEmbeddingProviders(),
		models:    domain.DefaultEmbeddingModels(),
		validate: func(s *domain.ProviderSettings) error {
			return factory.Validator().ValidateEmbedding(s)
		},
	})
}

func runConfigLLM(cmd *cobra.Command, _ []string) error {
	return configureProvider(cmd, providerSection{
		name:      "llm",
		title:     "LLM",
		providers: domain.AllLLMProviders(),
		models:    domain.DefaultLLMModels(),
		validate: func(s *domain.ProviderSettings) error {
			return factory.Validator().ValidateLLM(s)
		},
	})
}

// providerSection describes one of the provider strategy lists.
type providerSection struct {
	name      string
	title     string
	providers []domain.AIProvider
	models    map[domain.AIProvider]string
	validate  func(*domain.ProviderSettings) error
}

// configureProvider asks for a provider, model and credentials, checks that
// the provider responds, and moves it to the front of the strategy list.
func configureProvider(cmd *cobra.Command, section providerSection) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}
	if factory == nil {
		return errors.New("provider validation not configured")
	}

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	cmd.Printf("Select %s Provider\n", section.title)
	for i, p := range section.providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(section.providers), 1)
	provider := section.providers[idx-1]

	defaultModel := section.models[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	settings := domain.ProviderSettings{Provider: provider, Model: model}

	if provider == domain.AIProviderOllama {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		settings.BaseURL = readLine(reader)
	}

	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		settings.APIKey = readPassword(in, reader)
		cmd.Println()
		if settings.APIKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := section.validate(&settings); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("%s configuration validation failed: %w", section.name, err)
	}
	cmd.Println("OK")

	values := map[string]string{
		providerKey(section.name, provider, "model"):    settings.Model,
		providerKey(section.name, provider, "base_url"): settings.BaseURL,
		providerKey(section.name, provider, "api_key"):  settings.APIKey,
	}
	for key, v := range values {
		if v == "" {
			continue
		}
		if err := store.Set(key, v); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	order := promote(store.GetStringSlice(section.name+".providers"), string(provider), section.providers)
	if err := store.Set(section.name+".providers", strings.Join(order, ",")); err != nil {
		return fmt.Errorf("failed to save %s.providers: %w", section.name, err)
	}

	cmd.Printf("%s provider configured: %s (%s)\n", section.title, provider.Description(), model)
	cmd.Printf("Strategy order: %s\n", strings.Join(order, ", "))
	return nil
}

// promote moves chosen to the front of current. An empty current list
// starts from chosen alone.
func promote(current []string, chosen string, known []domain.AIProvider) []string {
	order := []string{chosen}
	for _, name := range current {
		if name == chosen {
			continue
		}
		if !domain.AIProvider(name).IsValid() || !containsProvider(known, name) {
			continue
		}
		order = append(order, name)
	}
	return order
}

func containsProvider(list []domain.AIProvider, name string) bool {
	for _, p := range list {
		if string(p) == name {
			return true
		}
	}
	return false
}

func providerKey(section string, provider domain.AIProvider, field string) string {
	return section + "." + string(provider) + "." + field
}

// parseValue keeps integers, decimals and booleans typed in the TOML file.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}
	return s
}

func displayValue(key string, v any) string {
	s := fmt.Sprint(v)
	if strings.HasSuffix(key, "api_key") {
		return maskAPIKey(s)
	}
	return s
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo on a terminal and falls back to a plain line.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
