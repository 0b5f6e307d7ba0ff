package services

import (
	"time"

	"github.com/wecare-app/wecare/internal/models"
)

type AdminUserReader interface {
	CountUsers() (int64, error)
}

type AdminEntryReader interface {
	CountEntries() (int64, error)
	CountByMoodStatus(status string) (int64, error)
	ListDistressFlagged(limit int) ([]models.JournalEntry, error)
}

type AdminForumReader interface {
	CountPosts() (int64, error)
	ListFlaggedPosts(limit int) ([]models.Post, error)
}

type AdminOverview struct {
	Users                  int64 `json:"users"`
	Entries                int64 `json:"entries"`
	Posts                  int64 `json:"posts"`
	PendingClassifications int64 `json:"pending_classifications"`
	FailedClassifications  int64 `json:"failed_classifications"`
}

type DistressEntry struct {
	ID        string    `json:"id"`
	WrittenAt time.Time `json:"written_at"`
}

type FlaggedPost struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewQueue struct {
	FlaggedPosts    []FlaggedPost   `json:"flagged_posts"`
	DistressEntries []DistressEntry `json:"distress_entries"`
}

type AdminService struct {
	users   AdminUserReader
	entries AdminEntryReader
	forum   AdminForumReader
}

func NewAdminService(users AdminUserReader, entries AdminEntryReader, forum AdminForumReader) *AdminService {
	return &AdminService{users: users, entries: entries, forum: forum}
}

func (service *AdminService) Overview() (AdminOverview, error) {
	overview := AdminOverview{}

	var err error
	if overview.Users, err = service.users.CountUsers(); err != nil {
		return AdminOverview{}, err
	}
	if overview.Entries, err = service.entries.CountEntries(); err != nil {
		return AdminOverview{}, err
	}
	if overview.Posts, err = service.forum.CountPosts(); err != nil {
		return AdminOverview{}, err
	}
	if overview.PendingClassifications, err = service.entries.CountByMoodStatus(models.MoodStatusPending); err != nil {
		return AdminOverview{}, err
	}
	if overview.FailedClassifications, err = service.entries.CountByMoodStatus(models.MoodStatusUnavailable); err != nil {
		return AdminOverview{}, err
	}
	return overview, nil
}

// Review lists content needing a human look: forum posts flagged by
// moderation and journal entries whose wording suggested distress. Entry
// bodies stay private even from admins; only timestamps are exposed.
func (service *AdminService) Review(limit int) (ReviewQueue, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	queue := ReviewQueue{
		FlaggedPosts:    make([]FlaggedPost, 0),
		DistressEntries: make([]DistressEntry, 0),
	}

	posts, err := service.forum.ListFlaggedPosts(limit)
	if err != nil {
		return ReviewQueue{}, err
	}
	for _, post := range posts {
		queue.FlaggedPosts = append(queue.FlaggedPosts, FlaggedPost{
			ID:        post.PublicID,
			Body:      post.Body,
			CreatedAt: post.CreatedAt,
		})
	}

	entries, err := service.entries.ListDistressFlagged(limit)
	if err != nil {
		return ReviewQueue{}, err
	}
	for _, entry := range entries {
		queue.DistressEntries = append(queue.DistressEntries, DistressEntry{
			ID:        entry.PublicID,
			WrittenAt: entry.WrittenAt,
		})
	}
	return queue, nil
}
