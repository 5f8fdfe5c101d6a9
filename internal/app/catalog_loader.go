package app

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/romshelf-go/internal/domain"
	"go.uber.org/zap"
)

// CatalogLoader acquires the catalog from a remote source with bounded
// retries and ordered fallback sources, then installs the ranked result
// into the store. Only one load sequence runs at a time; a second Load
// while one is pending fails with ErrLoadInProgress.
type CatalogLoader struct {
	fetcher  domain.SourceFetcher
	store    *CatalogStore
	ranker   *Ranker
	notifier domain.StatusNotifier
	config   *domain.CatalogConfig
	logger   *zap.Logger

	mu      sync.Mutex
	loading bool
	lastErr error
}

// NewCatalogLoader creates a new catalog loader
func NewCatalogLoader(
	fetcher domain.SourceFetcher,
	store *CatalogStore,
	ranker *Ranker,
	notifier domain.StatusNotifier,
	config *domain.CatalogConfig,
	logger *zap.Logger,
) *CatalogLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogLoader{
		fetcher:  fetcher,
		store:    store,
		ranker:   ranker,
		notifier: notifier,
		config:   config,
		logger:   logger,
	}
}

// Start kicks off the initial load in the background. The result is
// logged; callers observe it through Loaded/LastError and /ready.
func (l *CatalogLoader) Start(ctx context.Context) {
	go func() {
		if _, err := l.Load(ctx); err != nil {
			l.logger.Error("Initial catalog load failed", zap.Error(err))
		}
	}()
}

// Load runs one full load sequence: for each source in order, up to
// 1+MaxRetries attempts with a fixed delay between them; retries
// exhausted on a source advance to the next fallback with the counter
// reset. On success the ranked items become the store's catalog.
func (l *CatalogLoader) Load(ctx context.Context) ([]domain.Item, error) {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil, domain.ErrLoadInProgress
	}
	l.loading = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loading = false
		l.mu.Unlock()
	}()

	// Safety ceiling over the whole sequence so a failing load can
	// never leave the catalog pending forever.
	if l.config.LoadDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.config.LoadDeadline)
		defer cancel()
	}

	items, err := l.loadSources(ctx)
	l.mu.Lock()
	l.lastErr = err
	l.mu.Unlock()

	if err != nil {
		if l.notifier != nil {
			l.notifier.NotifyFailed(err)
		}
		return nil, err
	}
	return items, nil
}

func (l *CatalogLoader) loadSources(ctx context.Context) ([]domain.Item, error) {
	var lastErr error

	for si, source := range l.config.Sources {
		for attempt := 0; attempt <= l.config.MaxRetries; attempt++ {
			if attempt > 0 {
				l.logger.Info("Retrying catalog source",
					zap.String("source", source),
					zap.Int("attempt", attempt+1),
					zap.Int("max_attempts", l.config.MaxRetries+1))

				// Wait before retry
				select {
				case <-time.After(l.config.RetryDelay):
				case <-ctx.Done():
					return nil, l.exhausted(lastErr, ctx.Err())
				}
			}

			if l.notifier != nil {
				l.notifier.NotifyAttempt(source, attempt+1, l.config.MaxRetries+1)
			}

			items, err := l.fetcher.Fetch(ctx, source)
			if err == nil {
				ranked := l.ranker.Rank(items)
				l.store.SetCatalog(ranked)

				l.logger.Info("Catalog loaded",
					zap.String("source", source),
					zap.Int("items", len(ranked)))

				if l.notifier != nil {
					l.notifier.NotifyLoaded(source, len(ranked))
				}
				return ranked, nil
			}

			lastErr = err
			l.logger.Warn("Catalog source attempt failed",
				zap.String("source", source),
				zap.Int("attempt", attempt+1),
				zap.Error(err))

			if ctx.Err() != nil {
				return nil, l.exhausted(lastErr, ctx.Err())
			}
		}

		if si+1 < len(l.config.Sources) {
			next := l.config.Sources[si+1]
			l.logger.Info("Advancing to fallback source",
				zap.String("from", source),
				zap.String("to", next))
			if l.notifier != nil {
				l.notifier.NotifyFallback(source, next)
			}
		}
	}

	return nil, l.exhausted(lastErr, nil)
}

// exhausted wraps the last classified failure into the terminal error
func (l *CatalogLoader) exhausted(lastErr, ctxErr error) error {
	inner := lastErr
	if inner == nil {
		inner = ctxErr
	}
	err := &domain.LoadError{Kind: domain.KindExhausted, Err: inner}
	l.logger.Error("All catalog sources exhausted", zap.Error(err))
	return err
}

// Loading reports whether a load sequence is currently in flight
func (l *CatalogLoader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// LastError returns the outcome of the most recent load sequence
func (l *CatalogLoader) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
