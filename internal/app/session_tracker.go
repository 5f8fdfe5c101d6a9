package app

import (
	"github.com/yourusername/romshelf-go/internal/domain"
	"go.uber.org/zap"
)

// SessionTracker records which items were downloaded during this
// session. Storage faults are logged and swallowed: a failed mark must
// never block the user's actual download.
type SessionTracker struct {
	repo      domain.DownloadRecordRepository
	sessionID string
	logger    *zap.Logger
}

// NewSessionTracker creates a tracker with a fresh session identifier
func NewSessionTracker(repo domain.DownloadRecordRepository, logger *zap.Logger) *SessionTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionTracker{
		repo:      repo,
		sessionID: domain.NewSessionID(),
		logger:    logger,
	}
}

// SessionID returns the identifier stamped on this session's records
func (t *SessionTracker) SessionID() string {
	return t.sessionID
}

// MarkDownloaded upserts a snapshot of the item keyed by its identity.
// Idempotent: marking the same identity again replaces the snapshot
// without growing the record count. Returns the record and whether the
// write succeeded.
func (t *SessionTracker) MarkDownloaded(item domain.Item) (*domain.DownloadRecord, bool) {
	record := domain.NewDownloadRecord(item, t.sessionID)
	if err := t.repo.Upsert(record); err != nil {
		t.logger.Warn("Failed to save download record",
			zap.String("title", item.Title),
			zap.Error(err))
		return record, false
	}

	t.logger.Info("Saved download state",
		zap.String("title", item.Title),
		zap.String("identity", record.ID))
	return record, true
}

// IsDownloaded reports whether the item's identity has been recorded
func (t *SessionTracker) IsDownloaded(item domain.Item) bool {
	ok, err := t.repo.Exists(item.Identity())
	if err != nil {
		t.logger.Warn("Failed to read download record",
			zap.String("title", item.Title),
			zap.Error(err))
		return false
	}
	return ok
}

// Count returns the number of distinct identities recorded
func (t *SessionTracker) Count() int64 {
	n, err := t.repo.Count()
	if err != nil {
		t.logger.Warn("Failed to count download records", zap.Error(err))
		return 0
	}
	return n
}

// Records returns all download records for this session
func (t *SessionTracker) Records() ([]*domain.DownloadRecord, error) {
	return t.repo.FindAll()
}
