package db

import (
	"time"

	"github.com/wecare-app/wecare/internal/models"
	"gorm.io/gorm"
)

type JournalEntryRepository struct {
	database *gorm.DB
}

func NewJournalEntryRepository(database *gorm.DB) *JournalEntryRepository {
	return &JournalEntryRepository{database: database}
}

func (repo *JournalEntryRepository) Create(entry *models.JournalEntry) error {
	return repo.database.Create(entry).Error
}

// FindByPublicID looks an entry up regardless of owner or deletion state; the
// caller decides whether the requester may see it.
func (repo *JournalEntryRepository) FindByPublicID(publicID string) (models.JournalEntry, bool, error) {
	entry := models.JournalEntry{}
	result := repo.database.Unscoped().Where("public_id = ?", publicID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.JournalEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.JournalEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *JournalEntryRepository) FindByID(entryID uint) (models.JournalEntry, bool, error) {
	entry := models.JournalEntry{}
	result := repo.database.Limit(1).Find(&entry, entryID)
	if result.Error != nil {
		return models.JournalEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.JournalEntry{}, false, nil
	}
	return entry, true, nil
}

// ListByUserPage returns non-deleted entries newest first using a keyset
// cursor on (written_at, id) so callers can restart iteration mid-stream.
func (repo *JournalEntryRepository) ListByUserPage(userID uint, since *time.Time, until *time.Time, cursorWrittenAt *time.Time, cursorID uint, limit int) ([]models.JournalEntry, error) {
	query := repo.database.Model(&models.JournalEntry{}).Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("written_at >= ?", *since)
	}
	if until != nil {
		query = query.Where("written_at < ?", *until)
	}
	if cursorWrittenAt != nil {
		query = query.Where("written_at < ? OR (written_at = ? AND id < ?)", *cursorWrittenAt, *cursorWrittenAt, cursorID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	entries := make([]models.JournalEntry, 0)
	if err := query.Order("written_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUserRange returns non-deleted entries with written_at in [from, to),
// oldest first, for trend aggregation.
func (repo *JournalEntryRepository) ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.JournalEntry, error) {
	entries := make([]models.JournalEntry, 0)
	if err := repo.database.
		Where("user_id = ? AND written_at >= ? AND written_at < ?", userID, from, to).
		Order("written_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SoftDelete hides the entry. The delete predicate only matches live rows, so
// a repeated delete affects zero rows and stays a no-op.
func (repo *JournalEntryRepository) SoftDelete(entryID uint) error {
	return repo.database.Delete(&models.JournalEntry{}, entryID).Error
}

// AnnotateMood folds a classification result into the entry. The update is a
// compare-and-set on the pending status: mood fields are written exactly once,
// and false is returned when another writer got there first.
func (repo *JournalEntryRepository) AnnotateMood(entryID uint, label string, confidence float64, status string) (bool, error) {
	result := repo.database.Model(&models.JournalEntry{}).
		Where("id = ? AND mood_status = ?", entryID, models.MoodStatusPending).
		Updates(map[string]any{
			"mood_label":      label,
			"mood_confidence": confidence,
			"mood_status":     status,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListPendingMoodIDs returns live entries still awaiting classification,
// oldest first. The annotation worker sweeps these at startup because the
// in-memory queue of a previous process is gone after a restart.
func (repo *JournalEntryRepository) ListPendingMoodIDs(limit int) ([]uint, error) {
	ids := make([]uint, 0)
	query := repo.database.Model(&models.JournalEntry{}).
		Where("mood_status = ?", models.MoodStatusPending).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *JournalEntryRepository) CountEntries() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.JournalEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *JournalEntryRepository) CountByMoodStatus(status string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.JournalEntry{}).
		Where("mood_status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *JournalEntryRepository) ListDistressFlagged(limit int) ([]models.JournalEntry, error) {
	entries := make([]models.JournalEntry, 0)
	query := repo.database.Where("distress = ?", true).Order("written_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
