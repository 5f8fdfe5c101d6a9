package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/romshelf-go/internal/domain"
)

// stubFetcher scripts one response per source and records the order of
// fetch calls
type stubFetcher struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]func() ([]domain.Item, error)
}

func (f *stubFetcher) Fetch(ctx context.Context, source string) ([]domain.Item, error) {
	f.mu.Lock()
	f.calls = append(f.calls, source)
	f.mu.Unlock()

	if fn, ok := f.responses[source]; ok {
		return fn()
	}
	return nil, domain.NewTransportError(source, 404)
}

func (f *stubFetcher) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// recordingNotifier captures progress notifications
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) NotifyAttempt(source string, attempt, maxAttempts int) {
	n.record(fmt.Sprintf("attempt %s %d/%d", source, attempt, maxAttempts))
}

func (n *recordingNotifier) NotifyFallback(from, to string) {
	n.record(fmt.Sprintf("fallback %s->%s", from, to))
}

func (n *recordingNotifier) NotifyLoaded(source string, count int) {
	n.record(fmt.Sprintf("loaded %s %d", source, count))
}

func (n *recordingNotifier) NotifyFailed(err error) {
	n.record("failed")
}

func (n *recordingNotifier) record(e string) {
	n.mu.Lock()
	n.events = append(n.events, e)
	n.mu.Unlock()
}

func (n *recordingNotifier) log() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func loaderTestConfig(sources ...string) *domain.CatalogConfig {
	return &domain.CatalogConfig{
		Sources:      sources,
		MaxRetries:   2,
		RetryDelay:   time.Millisecond,
		LoadDeadline: 5 * time.Second,
		PageSize:     50,
	}
}

func newTestLoader(fetcher domain.SourceFetcher, notifier domain.StatusNotifier, config *domain.CatalogConfig) (*CatalogLoader, *CatalogStore) {
	ranker := NewRanker(nil)
	store := NewCatalogStore(ranker, config.PageSize)
	return NewCatalogLoader(fetcher, store, ranker, notifier, config, nil), store
}

func okItems(n int) func() ([]domain.Item, error) {
	return func() ([]domain.Item, error) {
		return unrankedItems(n), nil
	}
}

func failWith(err error) func() ([]domain.Item, error) {
	return func() ([]domain.Item, error) {
		return nil, err
	}
}

func TestLoad_SuccessFirstAttempt(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]func() ([]domain.Item, error){
		"games.json": okItems(3),
	}}
	loader, store := newTestLoader(fetcher, nil, loaderTestConfig("games.json", "gbaroms.json"))

	items, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, []string{"games.json"}, fetcher.callLog())
	assert.True(t, store.Loaded())
	assert.Equal(t, 3, store.Len())
}

func TestLoad_SuccessInstallsRankedCatalog(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]func() ([]domain.Item, error){
		"games.json": func() ([]domain.Item, error) {
			items := unrankedItems(5)
			items[3].Title = "Pokemon - Emerald Version"
			return items, nil
		},
	}}
	loader, store := newTestLoader(fetcher, nil, loaderTestConfig("games.json"))

	items, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Pokemon - Emerald Version", items[0].Title)
	assert.Equal(t, "Pokemon - Emerald Version", store.CurrentPage().Items[0].Title)
}

func TestLoad_RetriesThenFallsBack(t *testing.T) {
	emptyErr := domain.NewLoadError(domain.KindEmpty, "games.json", errors.New("no valid items"))
	fetcher := &stubFetcher{responses: map[string]func() ([]domain.Item, error){
		"games.json":   failWith(emptyErr),
		"gbaroms.json": okItems(2),
	}}
	notifier := &recordingNotifier{}
	loader, store := newTestLoader(fetcher, notifier, loaderTestConfig("games.json", "gbaroms.json"))

	_, err := loader.Load(context.Background())

	require.NoError(t, err)
	// Same source retried to exhaustion before advancing
	assert.Equal(t, []string{"games.json", "games.json", "games.json", "gbaroms.json"}, fetcher.callLog())
	assert.True(t, store.Loaded())

	assert.Equal(t, []string{
		"attempt games.json 1/3",
		"attempt games.json 2/3",
		"attempt games.json 3/3",
		"fallback games.json->gbaroms.json",
		"attempt gbaroms.json 1/3",
		"loaded gbaroms.json 2",
	}, notifier.log())
}

func TestLoad_AllSourcesExhausted(t *testing.T) {
	lastErr := domain.NewTransportError("sgame.json", 500)
	fetcher := &stubFetcher{responses: map[string]func() ([]domain.Item, error){
		"games.json": failWith(domain.NewTransportError("games.json", 404)),
		"sgame.json": failWith(lastErr),
	}}
	notifier := &recordingNotifier{}
	loader, store := newTestLoader(fetcher, notifier, loaderTestConfig("games.json", "sgame.json"))

	_, err := loader.Load(context.Background())

	require.Error(t, err)
	le := domain.AsLoadError(err)
	require.NotNil(t, le)
	assert.Equal(t, domain.KindExhausted, le.Kind)
	// Terminal failure carries the last error's classification
	assert.True(t, errors.Is(err, lastErr))
	assert.Equal(t, le.Message(), lastErr.Message())

	assert.False(t, store.Loaded())
	assert.Len(t, fetcher.callLog(), 6)
	assert.Contains(t, notifier.log(), "failed")
	assert.ErrorIs(t, loader.LastError(), lastErr)
}

func TestLoad_OnlyOneSequenceInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	fetcher := &stubFetcher{responses: map[string]func() ([]domain.Item, error){
		"games.json": func() ([]domain.Item, error) {
			close(entered)
			<-release
			return unrankedItems(1), nil
		},
	}}
	loader, _ := newTestLoader(fetcher, nil, loaderTestConfig("games.json"))

	done := make(chan error, 1)
	go func() {
		_, err := loader.Load(context.Background())
		done <- err
	}()

	<-entered
	assert.True(t, loader.Loading())

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoadInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, loader.Loading())
}

func TestLoad_CancelledContextStops(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]func() ([]domain.Item, error){
		"games.json": failWith(domain.NewLoadError(domain.KindNetwork, "games.json", errors.New("refused"))),
	}}
	config := loaderTestConfig("games.json", "gbaroms.json")
	config.RetryDelay = time.Minute

	loader, _ := newTestLoader(fetcher, nil, config)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx)

	require.Error(t, err)
	le := domain.AsLoadError(err)
	require.NotNil(t, le)
	assert.Equal(t, domain.KindExhausted, le.Kind)
	// Cancelled before any retry wait elapsed
	assert.Equal(t, []string{"games.json"}, fetcher.callLog())
}
