package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MoodJoy     = "joy"
	MoodSadness = "sadness"
	MoodAnger   = "anger"
	MoodFear    = "fear"
	MoodNeutral = "neutral"
	MoodAnxious = "anxious"
	MoodCalm    = "calm"
)

const (
	MoodStatusPending     = "pending"
	MoodStatusDone        = "done"
	MoodStatusUnavailable = "unavailable"
)

// JournalEntry is one journal submission with derived mood metadata.
// Mood fields are written exactly once: annotation updates only rows still in
// the pending state. Edits never mutate history; a revision is a new entry
// linked through RevisesID, and the superseded version is soft-deleted.
type JournalEntry struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	PublicID       string         `gorm:"uniqueIndex;not null" json:"id"`
	UserID         uint           `gorm:"not null;index:idx_entry_user_written,priority:1" json:"-"`
	Body           string         `gorm:"not null" json:"body"`
	WrittenAt      time.Time      `gorm:"not null;index:idx_entry_user_written,priority:2" json:"written_at"`
	MoodLabel      string         `gorm:"not null;default:neutral" json:"mood_label"`
	MoodConfidence float64        `gorm:"not null;default:0" json:"mood_confidence"`
	MoodStatus     string         `gorm:"not null;default:pending" json:"mood_status"`
	RevisesID      *uint          `json:"-"`
	Distress       bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func ValidMoodLabel(label string) bool {
	switch label {
	case MoodJoy, MoodSadness, MoodAnger, MoodFear, MoodNeutral, MoodAnxious, MoodCalm:
		return true
	default:
		return false
	}
}
