package services

import "strings"

// forbiddenWords blocks forum content that has no place on a peer-support
// board. Journal entries are private and are never rejected on wording.
var forbiddenWords = []string{
	"hate", "violence", "kill", "drugs", "slur", "explicit",
	"harm myself", "harm others", "suicide", "murder", "rape",
	"sex act", "child abuse",
}

// distressPhrases mark content that suggests the author may be in crisis.
// Matching content is stored and flagged for review, never rejected.
var distressPhrases = []string{
	"end it", "kill myself", "can't cope", "suicidal", "self harm",
	"overdose", "overdosed", "harm myself", "harm others",
	"want to die", "hopeless", "worthless", "no point",
}

func ContentRejected(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range forbiddenWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func DetectDistress(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range distressPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
