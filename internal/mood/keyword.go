package mood

import (
	"context"
	"strings"

	"github.com/wecare-app/wecare/internal/models"
)

// KeywordClassifier scores text against a small mood lexicon. It serves as
// the local classifier when no remote service is configured, so self-hosted
// deployments still get mood annotation out of the box.
type KeywordClassifier struct {
	lexicon map[string]string
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{lexicon: defaultLexicon()}
}

func defaultLexicon() map[string]string {
	return map[string]string{
		"happy":       models.MoodJoy,
		"joy":         models.MoodJoy,
		"grateful":    models.MoodJoy,
		"excited":     models.MoodJoy,
		"proud":       models.MoodJoy,
		"sad":         models.MoodSadness,
		"depressed":   models.MoodSadness,
		"lonely":      models.MoodSadness,
		"hopeless":    models.MoodSadness,
		"crying":      models.MoodSadness,
		"angry":       models.MoodAnger,
		"furious":     models.MoodAnger,
		"frustrated":  models.MoodAnger,
		"irritated":   models.MoodAnger,
		"afraid":      models.MoodFear,
		"scared":      models.MoodFear,
		"terrified":   models.MoodFear,
		"panic":       models.MoodFear,
		"anxious":     models.MoodAnxious,
		"anxiety":     models.MoodAnxious,
		"worried":     models.MoodAnxious,
		"stress":      models.MoodAnxious,
		"stressed":    models.MoodAnxious,
		"overwhelmed": models.MoodAnxious,
		"calm":        models.MoodCalm,
		"peaceful":    models.MoodCalm,
		"relaxed":     models.MoodCalm,
		"rested":      models.MoodCalm,
	}
}

func (classifier *KeywordClassifier) Classify(_ context.Context, text string) (Result, error) {
	hits := make(map[string]int)
	total := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:()\"'")
		if label, found := classifier.lexicon[word]; found {
			hits[label]++
			total++
		}
	}

	if total == 0 {
		return Result{Label: models.MoodNeutral, Confidence: 0.5}, nil
	}

	best := models.MoodNeutral
	bestCount := 0
	for _, label := range []string{
		models.MoodJoy, models.MoodSadness, models.MoodAnger,
		models.MoodFear, models.MoodAnxious, models.MoodCalm,
	} {
		if hits[label] > bestCount {
			best = label
			bestCount = hits[label]
		}
	}

	// Confidence grows with lexicon agreement but stays below a remote
	// model's ceiling.
	confidence := 0.5 + 0.4*float64(bestCount)/float64(total)
	return Result{Label: best, Confidence: confidence}, nil
}
