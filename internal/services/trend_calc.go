package services

import (
	"sort"
	"time"

	"github.com/wecare-app/wecare/internal/models"
)

// TrendBucket aggregates entries sharing a time window and mood label.
// Buckets are derived, never stored: a fold over the live entry set always
// reproduces them.
type TrendBucket struct {
	WindowStart   time.Time `json:"window_start"`
	WindowEnd     time.Time `json:"window_end"`
	Label         string    `json:"label"`
	Count         int       `json:"count"`
	AvgConfidence float64   `json:"avg_confidence"`
}

// FoldTrendBuckets partitions [rangeStart, rangeEnd) into contiguous windows
// of windowSize and groups entries by (window, mood label). Assignment is
// left-inclusive, right-exclusive. Windows without entries produce no
// buckets. The fold is order-independent: any permutation of entries yields
// the same counts and the same mean confidence up to float rounding.
func FoldTrendBuckets(entries []models.JournalEntry, windowSize time.Duration, rangeStart time.Time, rangeEnd time.Time) []TrendBucket {
	if windowSize <= 0 || !rangeEnd.After(rangeStart) {
		return []TrendBucket{}
	}

	type bucketKey struct {
		window int
		label  string
	}
	type bucketSum struct {
		count      int
		confidence float64
	}

	sums := make(map[bucketKey]bucketSum)
	for _, entry := range entries {
		if entry.WrittenAt.Before(rangeStart) || !entry.WrittenAt.Before(rangeEnd) {
			continue
		}
		window := int(entry.WrittenAt.Sub(rangeStart) / windowSize)
		key := bucketKey{window: window, label: entry.MoodLabel}
		sum := sums[key]
		sum.count++
		sum.confidence += entry.MoodConfidence
		sums[key] = sum
	}

	buckets := make([]TrendBucket, 0, len(sums))
	for key, sum := range sums {
		windowStart := rangeStart.Add(time.Duration(key.window) * windowSize)
		windowEnd := windowStart.Add(windowSize)
		if windowEnd.After(rangeEnd) {
			windowEnd = rangeEnd
		}
		buckets = append(buckets, TrendBucket{
			WindowStart:   windowStart,
			WindowEnd:     windowEnd,
			Label:         key.label,
			Count:         sum.count,
			AvgConfidence: sum.confidence / float64(sum.count),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].WindowStart.Equal(buckets[j].WindowStart) {
			return buckets[i].WindowStart.Before(buckets[j].WindowStart)
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}
