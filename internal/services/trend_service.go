package services

import (
	"errors"
	"time"

	"github.com/wecare-app/wecare/internal/models"
)

const MinTrendWindow = time.Minute

var ErrInvalidTrendRange = errors.New("invalid trend range")
var ErrInvalidTrendWindow = errors.New("invalid trend window")

type TrendEntryReader interface {
	ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.JournalEntry, error)
}

type TrendService struct {
	entries TrendEntryReader
}

func NewTrendService(entries TrendEntryReader) *TrendService {
	return &TrendService{entries: entries}
}

// GetTrend recomputes the bucket series for one user from the live entry set.
// Soft-deleted entries never reach the fold because the reader excludes them.
func (service *TrendService) GetTrend(userID uint, windowSize time.Duration, rangeStart time.Time, rangeEnd time.Time) ([]TrendBucket, error) {
	if windowSize < MinTrendWindow {
		return nil, ErrInvalidTrendWindow
	}
	if !rangeEnd.After(rangeStart) {
		return nil, ErrInvalidTrendRange
	}

	entries, err := service.entries.ListByUserRange(userID, rangeStart.UTC(), rangeEnd.UTC())
	if err != nil {
		return nil, err
	}

	return FoldTrendBuckets(entries, windowSize, rangeStart.UTC(), rangeEnd.UTC()), nil
}
