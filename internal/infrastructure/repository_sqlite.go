package infrastructure

import (
	"fmt"

	"github.com/yourusername/romshelf-go/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLiteRecordRepository implements DownloadRecordRepository using
// SQLite. With the default ":memory:" path the record store lives
// exactly as long as the process, which is the session scope.
type SQLiteRecordRepository struct {
	db *gorm.DB
}

// NewSQLiteRecordRepository creates a new SQLite repository
func NewSQLiteRecordRepository(dbPath string) (*SQLiteRecordRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.DownloadRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteRecordRepository{db: db}, nil
}

// Upsert inserts or replaces a record keyed by its identity
func (r *SQLiteRecordRepository) Upsert(record *domain.DownloadRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "download_link", "platform", "thumbnail", "session_id", "downloaded_at",
		}),
	}).Create(record).Error
}

// Exists reports whether a record with the given identity exists
func (r *SQLiteRecordRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.DownloadRecord{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindAll returns all records ordered by download time
func (r *SQLiteRecordRepository) FindAll() ([]*domain.DownloadRecord, error) {
	var records []*domain.DownloadRecord
	err := r.db.Order("downloaded_at ASC").Find(&records).Error
	return records, err
}

// Count returns the total number of records
func (r *SQLiteRecordRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.DownloadRecord{}).Count(&count).Error
	return count, err
}

// Close closes the database connection
func (r *SQLiteRecordRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
