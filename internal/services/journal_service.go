package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wecare-app/wecare/internal/models"
	"github.com/wecare-app/wecare/internal/mood"
)

type JournalEntryStore interface {
	Create(entry *models.JournalEntry) error
	FindByPublicID(publicID string) (models.JournalEntry, bool, error)
	FindByID(entryID uint) (models.JournalEntry, bool, error)
	ListByUserPage(userID uint, since *time.Time, until *time.Time, cursorWrittenAt *time.Time, cursorID uint, limit int) ([]models.JournalEntry, error)
	SoftDelete(entryID uint) error
	AnnotateMood(entryID uint, label string, confidence float64, status string) (bool, error)
	ListPendingMoodIDs(limit int) ([]uint, error)
}

type MoodClassifier interface {
	Classify(ctx context.Context, text string) mood.Result
}

// JournalService owns the entry lifecycle: create, annotate, list, revise,
// soft delete. Mood annotation is best-effort; in async mode Create returns a
// pending entry and a background worker lands the result shortly after.
type JournalService struct {
	entries    JournalEntryStore
	classifier MoodClassifier
	async      bool
	queue      chan uint
}

func NewJournalService(entries JournalEntryStore, classifier MoodClassifier, async bool) *JournalService {
	return &JournalService{
		entries:    entries,
		classifier: classifier,
		async:      async,
		queue:      make(chan uint, 256),
	}
}

// Start runs the annotation worker until the context is cancelled. It is a
// no-op in synchronous mode. The in-memory queue does not survive restarts,
// so the worker first sweeps rows still pending in storage; entries queued by
// a previous process get annotated instead of staying pending forever.
func (service *JournalService) Start(ctx context.Context) {
	if !service.async {
		return
	}
	go func() {
		service.annotatePendingBacklog(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case entryID := <-service.queue:
				service.annotateByID(ctx, entryID)
			}
		}
	}()
}

const pendingSweepBatchSize = 64

func (service *JournalService) annotatePendingBacklog(ctx context.Context) {
	for {
		pending, err := service.entries.ListPendingMoodIDs(pendingSweepBatchSize)
		if err != nil || len(pending) == 0 {
			return
		}
		for _, entryID := range pending {
			if ctx.Err() != nil {
				return
			}
			service.annotateByID(ctx, entryID)
		}
		// Annotation moves rows out of pending, so the next batch makes
		// progress unless every annotation in this one failed the CAS.
		if len(pending) < pendingSweepBatchSize {
			return
		}
	}
}

func (service *JournalService) Create(ctx context.Context, userID uint, rawBody string, writtenAt time.Time) (models.JournalEntry, error) {
	return service.createEntry(ctx, userID, rawBody, writtenAt, nil)
}

func (service *JournalService) createEntry(ctx context.Context, userID uint, rawBody string, writtenAt time.Time, revisesID *uint) (models.JournalEntry, error) {
	body, err := NormalizeEntryBody(rawBody)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if writtenAt.IsZero() {
		writtenAt = time.Now()
	}

	entry := models.JournalEntry{
		PublicID:       uuid.NewString(),
		UserID:         userID,
		Body:           body,
		WrittenAt:      writtenAt.UTC(),
		MoodLabel:      models.MoodNeutral,
		MoodConfidence: 0,
		MoodStatus:     models.MoodStatusPending,
		RevisesID:      revisesID,
		Distress:       DetectDistress(body),
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.JournalEntry{}, err
	}

	if service.async {
		select {
		case service.queue <- entry.ID:
		default:
			// Queue full: annotate inline so the pending window stays bounded.
			service.annotateByID(ctx, entry.ID)
		}
		return entry, nil
	}

	service.annotate(ctx, entry.ID, body)
	annotated, found, err := service.entries.FindByID(entry.ID)
	if err != nil || !found {
		return entry, nil
	}
	return annotated, nil
}

func (service *JournalService) annotateByID(ctx context.Context, entryID uint) {
	entry, found, err := service.entries.FindByID(entryID)
	if err != nil || !found {
		return
	}
	if entry.MoodStatus != models.MoodStatusPending {
		return
	}
	service.annotate(ctx, entryID, entry.Body)
}

func (service *JournalService) annotate(ctx context.Context, entryID uint, body string) {
	result := service.classifier.Classify(ctx, body)
	status := models.MoodStatusDone
	if result.Failed {
		status = models.MoodStatusUnavailable
	}
	// Compare-and-set on the pending status: a concurrent annotator losing
	// the race is fine, the first result stands.
	_, _ = service.entries.AnnotateMood(entryID, result.Label, result.Confidence, status)
}

func (service *JournalService) Get(userID uint, publicID string) (models.JournalEntry, error) {
	entry, found, err := service.entries.FindByPublicID(publicID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if !found || entry.DeletedAt.Valid {
		return models.JournalEntry{}, ErrNotFound
	}
	if entry.UserID != userID {
		return models.JournalEntry{}, ErrUnauthorized
	}
	return entry, nil
}

func (service *JournalService) List(userID uint, since *time.Time, until *time.Time, cursorWrittenAt *time.Time, cursorID uint, limit int) ([]models.JournalEntry, error) {
	return service.entries.ListByUserPage(userID, since, until, cursorWrittenAt, cursorID, EntryListLimit(limit))
}

// SoftDelete hides the entry from listings and trend aggregation while
// keeping the row for audit. Deleting an already-deleted entry is a no-op.
func (service *JournalService) SoftDelete(userID uint, publicID string) error {
	entry, found, err := service.entries.FindByPublicID(publicID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	if entry.UserID != userID {
		return ErrUnauthorized
	}
	if entry.DeletedAt.Valid {
		return nil
	}
	return service.entries.SoftDelete(entry.ID)
}

// Revise creates a new entry version with the edited body and retires the old
// one. History is never mutated: the original stays on record, soft-deleted,
// and the revision is re-classified from scratch.
func (service *JournalService) Revise(ctx context.Context, userID uint, publicID string, rawBody string) (models.JournalEntry, error) {
	original, err := service.Get(userID, publicID)
	if err != nil {
		return models.JournalEntry{}, err
	}

	revision, err := service.createEntry(ctx, userID, rawBody, original.WrittenAt, &original.ID)
	if err != nil {
		return models.JournalEntry{}, err
	}

	if err := service.entries.SoftDelete(original.ID); err != nil {
		return models.JournalEntry{}, err
	}
	return revision, nil
}
