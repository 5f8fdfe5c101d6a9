package domain

import "context"

// DownloadRecordRepository defines the interface for session download
// record persistence
type DownloadRecordRepository interface {
	// Upsert inserts or replaces a record keyed by its identity
	Upsert(record *DownloadRecord) error

	// Exists reports whether a record with the given identity exists
	Exists(id string) (bool, error)

	// FindAll returns all records ordered by download time
	FindAll() ([]*DownloadRecord, error)

	// Count returns the number of distinct identity keys recorded
	Count() (int64, error)
}

// SourceFetcher retrieves and decodes one catalog source. Implementations
// classify failures as *LoadError and return only valid items.
type SourceFetcher interface {
	Fetch(ctx context.Context, source string) ([]Item, error)
}

// StatusNotifier receives progress notifications during a load sequence.
// The notifier is optional; the loader skips all calls when none is set.
type StatusNotifier interface {
	// NotifyAttempt is called before each attempt on a source
	NotifyAttempt(source string, attempt, maxAttempts int)

	// NotifyFallback is called when retries on a source are exhausted
	// and loading advances to the next fallback source
	NotifyFallback(from, to string)

	// NotifyLoaded is called once on a successful load
	NotifyLoaded(source string, count int)

	// NotifyFailed is called once when all sources are exhausted
	NotifyFailed(err error)
}
