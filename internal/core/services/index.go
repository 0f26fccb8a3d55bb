package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/logger"
)

// IndexConfig tunes embedding and retrieval.
type IndexConfig struct {
	// TopK is the default number of chunks returned by Query.
	TopK int

	// Workers is the number of concurrent embedding requests.
	Workers int

	// EmbedRate caps embedding requests per second. Zero means unlimited.
	EmbedRate float64
}

// SemanticIndex embeds chunks into a ChunkStore and answers
// nearest-neighbour queries against it.
//
// Build holds the write lock for the whole rebuild, so queries issued
// during a rebuild block until it finishes and never see partial data.
type SemanticIndex struct {
	embedder   driven.EmbeddingService
	strategies []driven.StoreStrategy
	cfg        IndexConfig

	mu     sync.RWMutex
	store  driven.ChunkStore
	chunks int
	report domain.StrategyReport
}

// NewSemanticIndex creates an index. Store strategies are tried in order
// on every build; the first one that opens and accepts the data is used.
func NewSemanticIndex(
	embedder driven.EmbeddingService,
	strategies []driven.StoreStrategy,
	cfg IndexConfig,
) *SemanticIndex {
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	if cfg.Workers <= 0 {
		cfg.Workers = domain.DefaultWorkers
	}
	return &SemanticIndex{
		embedder:   embedder,
		strategies: strategies,
		cfg:        cfg,
	}
}

// Build replaces the index contents with the given chunks.
// On failure the index is left not ready.
func (x *SemanticIndex) Build(ctx context.Context, chunks []domain.Chunk) (domain.StrategyReport, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	logger.Section("Index Build")
	x.resetLocked()

	var report domain.StrategyReport
	if len(chunks) == 0 {
		return report, fmt.Errorf("%w: no chunks to index", domain.ErrBuildFailure)
	}
	if x.embedder == nil {
		return report, fmt.Errorf("%w: %w", domain.ErrBuildFailure, domain.ErrEmbeddingUnavailable)
	}
	if len(x.strategies) == 0 {
		return report, fmt.Errorf("%w: no store strategies configured", domain.ErrBuildFailure)
	}

	var vectors [][]float32
	var lastErr error

	for _, strategy := range x.strategies {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("%w: %w", domain.ErrBuildFailure, err)
		}

		store, err := x.attempt(ctx, strategy, chunks, &vectors)
		if err != nil {
			logger.Warn("Store %q failed: %v", strategy.Name, err)
			report.Fail(strategy.Name, err)
			lastErr = err
			continue
		}

		report.Chosen = strategy.Name
		x.store = store
		x.chunks = len(chunks)
		x.report = report
		logger.L().Info("index built",
			zap.String("store", strategy.Name),
			zap.Int("chunks", len(chunks)),
			zap.Int("failed_attempts", len(report.Attempts)))
		return report, nil
	}

	x.report = report
	return report, fmt.Errorf("%w: %w", domain.ErrBuildFailure, lastErr)
}

// attempt opens one store, embeds the chunks if not done yet and
// replaces the store's contents.
func (x *SemanticIndex) attempt(
	ctx context.Context,
	strategy driven.StoreStrategy,
	chunks []domain.Chunk,
	vectors *[][]float32,
) (driven.ChunkStore, error) {
	store, err := strategy.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if *vectors == nil {
		v, err := x.embedAll(ctx, chunks)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		*vectors = v
	}

	embedded := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		c.Embedding = (*vectors)[i]
		embedded[i] = c
	}

	if err := store.Replace(ctx, embedded); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("write: %w", err)
	}
	return store, nil
}

// embedAll computes one vector per chunk on a worker pool.
// All vectors are materialised before returning.
func (x *SemanticIndex) embedAll(parent context.Context, chunks []domain.Chunk) ([][]float32, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var limiter *rate.Limiter
	if x.cfg.EmbedRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(x.cfg.EmbedRate), 1)
	}

	workers := x.cfg.Workers
	if workers > len(chunks) {
		workers = len(chunks)
	}
	logger.Debug("Embedding %d chunks with %d workers (model=%s)", len(chunks), workers, x.embedder.ModelName())

	vectors := make([][]float32, len(chunks))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						fail(err)
						continue
					}
				}
				vec, err := x.embedder.Embed(ctx, chunks[i].Content)
				if err != nil {
					fail(fmt.Errorf("embed chunk %d: %w", i, err))
					continue
				}
				if len(vec) == 0 {
					fail(fmt.Errorf("embed chunk %d: empty vector", i))
					continue
				}
				vectors[i] = vec
			}
		}()
	}

send:
	for i := range chunks {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break send
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Query returns the k chunks nearest to text, nearest first.
// k <= 0 uses the configured default.
func (x *SemanticIndex) Query(ctx context.Context, text string, k int) ([]domain.Chunk, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.store == nil {
		return nil, domain.ErrIndexNotReady
	}
	if k <= 0 {
		k = x.cfg.TopK
	}

	vec, err := x.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := x.store.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", x.store.Name(), err)
	}

	chunks := make([]domain.Chunk, len(hits))
	for i, h := range hits {
		chunks[i] = h.Chunk
		logger.Debug("Hit %d: %s (similarity %.3f)", i+1, h.Chunk.SourceName, h.Similarity)
	}
	return chunks, nil
}

// Ready reports whether a build has succeeded.
func (x *SemanticIndex) Ready() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.store != nil
}

// Count returns the number of indexed chunks.
func (x *SemanticIndex) Count() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.chunks
}

// Report returns the strategy report of the last build.
func (x *SemanticIndex) Report() domain.StrategyReport {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.report
}

// EmbeddingModel returns the embedding model name.
func (x *SemanticIndex) EmbeddingModel() string {
	if x.embedder == nil {
		return ""
	}
	return x.embedder.ModelName()
}

// Close releases the active store.
func (x *SemanticIndex) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.resetLocked()
}

func (x *SemanticIndex) resetLocked() error {
	var err error
	if x.store != nil {
		err = x.store.Close()
	}
	x.store = nil
	x.chunks = 0
	x.report = domain.StrategyReport{}
	return err
}
