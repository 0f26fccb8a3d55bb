package cli

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	setup    domain.SetupResult
	ask      domain.AskResult
	summary  domain.SummaryResult
	ingest   domain.IngestResult
	status   domain.Status
	setups   int
	asked    []string
	ingested []domain.Profile
}

func (m *mockProfileService) Setup(_ context.Context) domain.SetupResult {
	m.setups++
	if m.setup.Success {
		m.status.Ready = true
	}
	return m.setup
}

func (m *mockProfileService) Ask(_ context.Context, question string) domain.AskResult {
	m.asked = append(m.asked, question)
	return m.ask
}

func (m *mockProfileService) Summary(_ context.Context) domain.SummaryResult {
	return m.summary
}

func (m *mockProfileService) Ingest(_ context.Context, profiles []domain.Profile) domain.IngestResult {
	m.ingested = profiles
	return m.ingest
}

func (m *mockProfileService) Status(_ context.Context) domain.Status {
	return m.status
}

// mapStore is an in-memory driven.ConfigStore.
type mapStore struct {
	data map[string]any
}

var _ driven.ConfigStore = (*mapStore)(nil)

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]any)}
}

func (s *mapStore) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *mapStore) GetString(key string) string {
	v, _ := s.data[key].(string)
	return v
}

func (s *mapStore) GetInt(key string) int {
	v, _ := s.data[key].(int64)
	return int(v)
}

func (s *mapStore) GetFloat(key string) float64 {
	v, _ := s.data[key].(float64)
	return v
}

func (s *mapStore) GetBool(key string) bool {
	v, _ := s.data[key].(bool)
	return v
}

func (s *mapStore) GetStringSlice(key string) []string {
	v, ok := s.data[key].(string)
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func (s *mapStore) Set(key string, value any) error {
	s.data[key] = value
	return nil
}

func (s *mapStore) Unset(key string) error {
	delete(s.data, key)
	return nil
}

func (s *mapStore) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *mapStore) Save() error  { return nil }
func (s *mapStore) Load() error  { return nil }
func (s *mapStore) Path() string { return "/tmp/profilerag/config.toml" }

// mockValidator is a testify mock of driven.AIConfigValidator.
type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateEmbedding(settings *domain.ProviderSettings) error {
	return m.Called(settings).Error(0)
}

func (m *mockValidator) ValidateLLM(settings *domain.ProviderSettings) error {
	return m.Called(settings).Error(0)
}

// testFactory serves fixed collaborators.
type testFactory struct {
	store     driven.ConfigStore
	services  *Services
	profiles  []domain.Profile
	readErr   error
	validator *mockValidator
}

func (f *testFactory) Config(_ string) (driven.ConfigStore, error) {
	return f.store, nil
}

func (f *testFactory) Settings(_ driven.ConfigStore) (domain.AppSettings, error) {
	return domain.DefaultAppSettings(), nil
}

func (f *testFactory) Services(_ context.Context, _ domain.AppSettings) (*Services, error) {
	return f.services, nil
}

func (f *testFactory) ReadProfiles(_ string) ([]domain.Profile, error) {
	return f.profiles, f.readErr
}

func (f *testFactory) Validator() driven.AIConfigValidator {
	return f.validator
}

// testEnv holds the collaborators installed by setupTestServices.
type testEnv struct {
	svc     *mockProfileService
	store   *mapStore
	factory *testFactory
}

// setupTestServices installs mocks into the package globals and restores
// them, and every flag, when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		svc:   &mockProfileService{status: domain.Status{Ready: true}},
		store: newMapStore(),
	}
	env.factory = &testFactory{store: env.store, validator: &mockValidator{}}

	oldFactory, oldStore, oldService, oldPath := factory, configStore, profileService, profilesPath
	factory = env.factory
	configStore = env.store
	profileService = env.svc

	t.Cleanup(func() {
		factory, configStore, profileService, profilesPath = oldFactory, oldStore, oldService, oldPath
		closeServices = nil
		askJSON, summaryJSON, statusJSON, setupJSON, ingestSetup = false, false, false, false, false
		verbose, configDir = false, ""
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return env
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
