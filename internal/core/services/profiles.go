package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/core/ports/driving"
	"github.com/custodia-labs/profilerag/internal/logger"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// User-facing messages returned in results.
const (
	MsgSetupComplete   = "System setup completed successfully!"
	MsgEmptyQuestion   = "Please enter a question."
	MsgIndexNotReady   = "Index not ready. Please run setup first."
	MsgNoProfilesGiven = "No profiles provided"
)

// ProfileServiceConfig holds the collaborators of a ProfileService.
// Generator is optional; all other fields are required.
type ProfileServiceConfig struct {
	Store      driven.ProfileStore
	Normaliser driven.Normaliser
	Pipeline   driven.PostProcessorPipeline
	Index      *SemanticIndex
	Composer   *Composer
	Reporter   *SummaryReporter
	Generator  *Generator
}

// Validate checks that required collaborators are set.
func (c ProfileServiceConfig) Validate() error {
	switch {
	case c.Store == nil:
		return errors.New("profile store is required")
	case c.Normaliser == nil:
		return errors.New("normaliser is required")
	case c.Pipeline == nil:
		return errors.New("post-processor pipeline is required")
	case c.Index == nil:
		return errors.New("semantic index is required")
	case c.Composer == nil:
		return errors.New("composer is required")
	case c.Reporter == nil:
		return errors.New("summary reporter is required")
	}
	return nil
}

// ProfileService is the query surface over the profile collection.
type ProfileService struct {
	store      driven.ProfileStore
	normaliser driven.Normaliser
	pipeline   driven.PostProcessorPipeline
	index      *SemanticIndex
	composer   *Composer
	reporter   *SummaryReporter
	generator  *Generator

	// mu guards the cached collection. Ingest holds it for the whole
	// read-modify-write so readers only see fully written collections.
	mu       sync.RWMutex
	profiles []domain.Profile
	loaded   bool
	stale    bool

	// setupMu serialises setup runs.
	setupMu sync.Mutex
}

// NewProfileService creates a profile service.
func NewProfileService(cfg ProfileServiceConfig) (*ProfileService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ProfileService{
		store:      cfg.Store,
		normaliser: cfg.Normaliser,
		pipeline:   cfg.Pipeline,
		index:      cfg.Index,
		composer:   cfg.Composer,
		reporter:   cfg.Reporter,
		generator:  cfg.Generator,
	}, nil
}

// Setup reloads the collection and rebuilds the index.
func (s *ProfileService) Setup(ctx context.Context) domain.SetupResult {
	s.setupMu.Lock()
	defer s.setupMu.Unlock()

	logger.Section("Setup")

	profiles, err := s.reload(ctx)
	if err != nil {
		return setupFailure(err, domain.StrategyReport{}, 0, 0)
	}
	logger.Info("Loaded %d profiles from %s", len(profiles), s.store.Path())

	chunks, err := s.chunk(ctx, profiles)
	if err != nil {
		return setupFailure(err, domain.StrategyReport{}, len(profiles), 0)
	}
	logger.Info("Created %d chunks", len(chunks))

	report, err := s.index.Build(ctx, chunks)
	if err != nil {
		return setupFailure(err, report, len(profiles), len(chunks))
	}

	s.mu.Lock()
	s.stale = false
	s.mu.Unlock()

	logger.L().Info("setup complete",
		zap.Int("profiles", len(profiles)),
		zap.Int("chunks", len(chunks)),
		zap.String("store", report.Chosen))

	return domain.SetupResult{
		Success:  true,
		Message:  MsgSetupComplete,
		Profiles: len(profiles),
		Chunks:   len(chunks),
		Store:    report,
	}
}

func setupFailure(err error, report domain.StrategyReport, profiles, chunks int) domain.SetupResult {
	logger.Error("Setup failed: %v", err)
	return domain.SetupResult{
		Message:  fmt.Sprintf("Setup failed: %v", err),
		Profiles: profiles,
		Chunks:   chunks,
		Store:    report,
		Err:      err,
	}
}

// chunk normalises every profile and runs the post-processor pipeline.
func (s *ProfileService) chunk(ctx context.Context, profiles []domain.Profile) ([]domain.Chunk, error) {
	var all []domain.Chunk
	for i := range profiles {
		res, err := s.normaliser.Normalise(ctx, &profiles[i], i)
		if err != nil {
			return nil, fmt.Errorf("normalise profile %d: %w", i, err)
		}
		doc := res.Document
		chunks, err := s.pipeline.Process(ctx, &doc)
		if err != nil {
			return nil, fmt.Errorf("chunk profile %q: %w", doc.Name, err)
		}
		all = append(all, chunks...)
	}
	return all, nil
}

// Ask answers a question.
func (s *ProfileService) Ask(ctx context.Context, question string) domain.AskResult {
	if strings.TrimSpace(question) == "" {
		return domain.AskResult{Message: MsgEmptyQuestion, Err: domain.ErrValidation}
	}
	if !s.index.Ready() {
		return domain.AskResult{Message: MsgIndexNotReady, Err: domain.ErrIndexNotReady}
	}

	profiles, err := s.snapshot(ctx)
	if err != nil {
		return askFailure(err)
	}

	answer, err := s.composer.Compose(ctx, question, profiles)
	if err != nil {
		return askFailure(err)
	}
	return domain.AskResult{Success: true, Answer: answer}
}

func askFailure(err error) domain.AskResult {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return domain.AskResult{Message: MsgEmptyQuestion, Err: err}
	case errors.Is(err, domain.ErrIndexNotReady):
		return domain.AskResult{Message: MsgIndexNotReady, Err: err}
	default:
		logger.Warn("Query failed: %v", err)
		return domain.AskResult{Message: fmt.Sprintf("Error processing query: %v", err), Err: err}
	}
}

// Summary reports the profile count and top skills.
func (s *ProfileService) Summary(ctx context.Context) domain.SummaryResult {
	profiles, err := s.snapshot(ctx)
	if err != nil {
		return domain.SummaryResult{
			Message: fmt.Sprintf("Error getting summary: %v", err),
			Err:     err,
		}
	}
	return domain.SummaryResult{Success: true, Summary: s.reporter.Summarize(ctx, profiles)}
}

// Ingest merges profiles into the stored collection. Profiles whose
// linkedin_url is already present are rejected; empty URLs never collide.
// The index is not rebuilt; it is marked stale until the next setup.
func (s *ProfileService) Ingest(ctx context.Context, incoming []domain.Profile) domain.IngestResult {
	if len(incoming) == 0 {
		return domain.IngestResult{Message: MsgNoProfilesGiven, Err: domain.ErrValidation}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.Load(ctx)
	if err != nil {
		err = fmt.Errorf("load profiles: %w", err)
		return domain.IngestResult{Message: fmt.Sprintf("Ingest failed: %v", err), Err: err}
	}

	merged, accepted, rejected := domain.MergeProfiles(existing, incoming)
	if accepted > 0 {
		if err := s.store.Save(ctx, merged); err != nil {
			err = fmt.Errorf("save profiles: %w", err)
			return domain.IngestResult{Message: fmt.Sprintf("Ingest failed: %v", err), Err: err}
		}
		if s.index.Ready() {
			s.stale = true
		}
	}
	s.profiles = merged
	s.loaded = true

	logger.L().Info("ingest complete",
		zap.Int("accepted", accepted),
		zap.Int("rejected", rejected),
		zap.Int("total", len(merged)))

	return domain.IngestResult{
		Success: true,
		Message: fmt.Sprintf("Added %d new profiles, %d duplicates skipped. Total profiles: %d",
			accepted, rejected, len(merged)),
		Accepted: accepted,
		Rejected: rejected,
		Total:    len(merged),
	}
}

// Status reports the current state of the service.
func (s *ProfileService) Status(ctx context.Context) domain.Status {
	profiles, err := s.snapshot(ctx)
	if err != nil {
		logger.Warn("Status: %v", err)
	}

	s.mu.RLock()
	stale := s.stale
	s.mu.RUnlock()

	return domain.Status{
		Profiles:       len(profiles),
		Chunks:         s.index.Count(),
		Ready:          s.index.Ready(),
		Stale:          stale,
		Store:          s.index.Report().Chosen,
		EmbeddingModel: s.index.EmbeddingModel(),
		Generation:     s.generator.Capable(),
		LLMModel:       s.generator.ModelName(),
	}
}

// Close releases the index store.
func (s *ProfileService) Close() error {
	return s.index.Close()
}

// reload reads the collection from the store and replaces the cache.
func (s *ProfileService) reload(ctx context.Context) ([]domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	s.profiles = profiles
	s.loaded = true
	return profiles, nil
}

// snapshot returns the cached collection, loading it on first use.
// The returned slice is never written to after publication.
func (s *ProfileService) snapshot(ctx context.Context) ([]domain.Profile, error) {
	s.mu.RLock()
	if s.loaded {
		profiles := s.profiles
		s.mu.RUnlock()
		return profiles, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.profiles, nil
	}
	profiles, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	s.profiles = profiles
	s.loaded = true
	return profiles, nil
}
