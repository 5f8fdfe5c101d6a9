package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item represents one catalog entry. Items are immutable once loaded;
// invalid entries are dropped at load time and never enter the store.
type Item struct {
	Title        string `json:"title"`
	Platform     string `json:"platform"`
	Region       string `json:"region,omitempty"`
	Thumbnail    string `json:"thumbnail"`
	DownloadLink string `json:"download_link,omitempty"`
}

// Valid reports whether the item carries the required fields.
// The explicit-null download link case is handled during payload
// decoding, before an Item is ever constructed.
func (it Item) Valid() bool {
	return it.Title != "" && it.Platform != "" && it.Thumbnail != ""
}

// Identity returns the dedup key for the item: the download link when
// present, otherwise the title. Two distinct items sharing a title and
// lacking a link collide under this scheme; callers must tolerate that.
func (it Item) Identity() string {
	if it.DownloadLink != "" {
		return it.DownloadLink
	}
	return it.Title
}

// DownloadRecord is a session-scoped snapshot of an item the user
// triggered a download for.
type DownloadRecord struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	DownloadLink string    `json:"download_link,omitempty"`
	Platform     string    `json:"platform"`
	Thumbnail    string    `json:"thumbnail"`
	SessionID    string    `json:"session_id" gorm:"index"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// NewDownloadRecord creates a download record for an item. The record ID
// is the item's identity key, which makes repeated marks upsert in place.
func NewDownloadRecord(item Item, sessionID string) *DownloadRecord {
	return &DownloadRecord{
		ID:           item.Identity(),
		Title:        item.Title,
		DownloadLink: item.DownloadLink,
		Platform:     item.Platform,
		Thumbnail:    item.Thumbnail,
		SessionID:    sessionID,
		DownloadedAt: time.Now(),
	}
}

// NewSessionID generates the identifier stamped on all records written
// during one server run.
func NewSessionID() string {
	return uuid.New().String()
}
