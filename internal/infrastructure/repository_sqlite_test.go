package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/romshelf-go/internal/domain"
)

func newTestRepo(t *testing.T) *SQLiteRecordRepository {
	t.Helper()
	repo, err := NewSQLiteRecordRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleRecord(id string) *domain.DownloadRecord {
	return &domain.DownloadRecord{
		ID:           id,
		Title:        "Golden Sun",
		DownloadLink: id,
		Platform:     "GBA",
		Thumbnail:    "t.png",
		SessionID:    "session-1",
		DownloadedAt: time.Now(),
	}
}

func TestUpsert_InsertAndExists(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Upsert(sampleRecord("gs.zip")))

	ok, err := repo.Exists("gs.zip")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists("other.zip")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpsert_ReplacesSnapshotInPlace(t *testing.T) {
	repo := newTestRepo(t)

	first := sampleRecord("gs.zip")
	first.DownloadedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Upsert(first))

	second := sampleRecord("gs.zip")
	second.Thumbnail = "updated.png"
	require.NoError(t, repo.Upsert(second))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	records, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "updated.png", records[0].Thumbnail)
	assert.WithinDuration(t, second.DownloadedAt, records[0].DownloadedAt, time.Second)
}

func TestFindAll_OrderedByDownloadTime(t *testing.T) {
	repo := newTestRepo(t)

	older := sampleRecord("a.zip")
	older.DownloadedAt = time.Now().Add(-time.Hour)
	newer := sampleRecord("b.zip")

	require.NoError(t, repo.Upsert(newer))
	require.NoError(t, repo.Upsert(older))

	records, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a.zip", records[0].ID)
	assert.Equal(t, "b.zip", records[1].ID)
}

func TestCount_Empty(t *testing.T) {
	repo := newTestRepo(t)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
