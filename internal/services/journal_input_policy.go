package services

import "strings"

const MaxEntryBodyLength = 8000

const (
	DefaultEntryListLimit = 50
	MaxEntryListLimit     = 200
)

// EntryListLimit maps a requested page size onto the effective one. Callers
// paginating with a cursor must use the same value the listing was served
// with, or the end-of-page detection breaks.
func EntryListLimit(requested int) int {
	if requested <= 0 || requested > MaxEntryListLimit {
		return DefaultEntryListLimit
	}
	return requested
}

// NormalizeEntryBody trims surrounding whitespace and validates length
// limits. Journal bodies are private, so moderation never rejects them.
func NormalizeEntryBody(raw string) (string, error) {
	body := strings.TrimSpace(raw)
	if body == "" {
		return "", ErrBodyRequired
	}
	if len(body) > MaxEntryBodyLength {
		return "", ErrBodyTooLong
	}
	return body, nil
}
