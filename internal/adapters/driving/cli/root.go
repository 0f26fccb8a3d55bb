// Package cli provides the profilerag command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/core/ports/driving"
	"github.com/custodia-labs/profilerag/internal/logger"
)

// Services are the runtime collaborators built from settings.
type Services struct {
	Profiles     driving.ProfileService
	ProfilesPath string
	Warnings     []string
	Close        func()
}

// Factory builds configuration and services on demand so that global flags
// such as --config are parsed before anything is opened.
type Factory interface {
	// Config opens the config store in dir, or the default dir when empty.
	Config(dir string) (driven.ConfigStore, error)

	// Settings loads and validates settings from the store and environment.
	Settings(store driven.ConfigStore) (domain.AppSettings, error)

	// Services selects AI backends and wires the profile service.
	Services(ctx context.Context, settings domain.AppSettings) (*Services, error)

	// ReadProfiles decodes a profile file for ingest.
	ReadProfiles(path string) ([]domain.Profile, error)

	// Validator checks provider configurations for the config wizards.
	Validator() driven.AIConfigValidator
}

var (
	version = "dev"

	verbose   bool
	configDir string

	factory Factory

	// Set lazily by ensureConfig and ensureServices, or directly by tests.
	configStore    driven.ConfigStore
	profileService driving.ProfileService
	profilesPath   string
	closeServices  func()
)

var errNotConfigured = errors.New("profile service not configured")

var rootCmd = &cobra.Command{
	Use:   "profilerag",
	Short: "Question answering over LinkedIn profiles",
	Long: `profilerag indexes a collection of LinkedIn-style profiles and answers
natural-language questions about them.

Answers are generated by a language model from the most relevant profile
chunks, with a deterministic skills analysis as fallback when no model is
reachable. Run 'profilerag setup' once, then 'profilerag ask'.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  persistentPreRun,
	PersistentPostRunE: persistentPostRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.profilerag)")
}

// SetFactory sets the factory used to build configuration and services.
func SetFactory(f Factory) {
	factory = f
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func persistentPreRun(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	return nil
}

func persistentPostRun(_ *cobra.Command, _ []string) error {
	if closeServices != nil {
		closeServices()
		closeServices = nil
		profileService = nil
	}
	// Syncing stderr fails on some terminals; nothing is buffered there.
	_ = logger.Sync()
	return nil
}

// ensureConfig opens the config store if it has not been set.
func ensureConfig() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}
	if factory == nil {
		return nil, errors.New("config store not configured")
	}
	store, err := factory.Config(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	configStore = store
	return store, nil
}

// ensureServices builds the profile service if it has not been set.
func ensureServices(cmd *cobra.Command) (driving.ProfileService, error) {
	if profileService != nil {
		return profileService, nil
	}
	if factory == nil {
		return nil, errNotConfigured
	}

	store, err := ensureConfig()
	if err != nil {
		return nil, err
	}
	settings, err := factory.Settings(store)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	logger.Section("Starting services")
	svc, err := factory.Services(cmd.Context(), settings)
	if err != nil {
		return nil, fmt.Errorf("start services: %w", err)
	}
	for _, w := range svc.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	profileService = svc.Profiles
	profilesPath = svc.ProfilesPath
	closeServices = svc.Close
	return profileService, nil
}

// ensureReady runs setup when the index has not been built in this process.
func ensureReady(cmd *cobra.Command, svc driving.ProfileService) error {
	if svc.Status(cmd.Context()).Ready {
		return nil
	}
	logger.Info("index not ready, running setup")
	res := svc.Setup(cmd.Context())
	if !res.Success {
		return errors.New(res.Message)
	}
	return nil
}
