package infrastructure

import (
	"fmt"
	"sync"

	"github.com/yourusername/romshelf-go/internal/domain"
	"go.uber.org/zap"
)

// StatusNotifier publishes load progress as log events and keeps the
// latest human-readable status line for the API to expose. It implements
// domain.StatusNotifier.
type StatusNotifier struct {
	logger *zap.Logger

	mu   sync.RWMutex
	last string
}

// NewStatusNotifier creates a new status notifier
func NewStatusNotifier(logger *zap.Logger) *StatusNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusNotifier{logger: logger}
}

// NotifyAttempt records an attempt on a source
func (n *StatusNotifier) NotifyAttempt(source string, attempt, maxAttempts int) {
	msg := fmt.Sprintf("Loading catalog from %s...", source)
	if attempt > 1 {
		msg = fmt.Sprintf("Loading catalog from %s (attempt %d/%d)...", source, attempt, maxAttempts)
	}
	n.set(msg)
	n.logger.Info("Catalog load attempt",
		zap.String("source", source),
		zap.Int("attempt", attempt),
		zap.Int("max_attempts", maxAttempts))
}

// NotifyFallback records a transition to a fallback source
func (n *StatusNotifier) NotifyFallback(from, to string) {
	n.set(fmt.Sprintf("Trying alternative data source: %s...", to))
	n.logger.Info("Catalog source fallback",
		zap.String("from", from),
		zap.String("to", to))
}

// NotifyLoaded records a successful load
func (n *StatusNotifier) NotifyLoaded(source string, count int) {
	n.set(fmt.Sprintf("Loaded %d items from %s", count, source))
	n.logger.Info("Catalog load succeeded",
		zap.String("source", source),
		zap.Int("items", count))
}

// NotifyFailed records a terminal load failure
func (n *StatusNotifier) NotifyFailed(err error) {
	msg := "Failed to load catalog."
	if le := domain.AsLoadError(err); le != nil {
		msg = le.Message()
	}
	n.set(msg)
	n.logger.Error("Catalog load failed", zap.Error(err))
}

// LastStatus returns the most recent status line
func (n *StatusNotifier) LastStatus() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.last
}

func (n *StatusNotifier) set(msg string) {
	n.mu.Lock()
	n.last = msg
	n.mu.Unlock()
}
