// Package mood wraps text-to-mood classification behind a fallible adapter.
// Classification is best-effort annotation: a journal entry is never blocked
// from being saved because the classifier was slow or down.
package mood

import (
	"context"

	"github.com/wecare-app/wecare/internal/models"
)

// Result is the transient outcome of classifying one piece of text. Failed
// results carry the neutral label with zero confidence.
type Result struct {
	Label      string
	Confidence float64
	Failed     bool
}

// Classifier maps free text to a mood label and confidence.
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}

// Fallback is the degraded result recorded when classification is
// unavailable.
func Fallback() Result {
	return Result{Label: models.MoodNeutral, Confidence: 0, Failed: true}
}
