package api

import (
	"context"
	"errors"
	"time"

	"github.com/wecare-app/wecare/internal/db"
	"github.com/wecare-app/wecare/internal/mood"
	"github.com/wecare-app/wecare/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

// Config carries the runtime knobs resolved by the entrypoint.
type Config struct {
	SecretKey           string
	CookieSecure        bool
	ClassifierURL       string
	ClassifierAPIKey    string
	ClassifierTimeout   time.Duration
	ClassifierCacheTTL  time.Duration
	AsyncClassification bool
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool

	repositories   *db.Repositories
	moodAdapter    *mood.Adapter
	authService    *services.AuthService
	journalService *services.JournalService
	trendService   *services.TrendService
	forumService   *services.ForumService
	adminService   *services.AdminService
	setupService   *services.SetupService
}

func NewHandler(database *gorm.DB, config Config) (*Handler, error) {
	if len(config.SecretKey) < 32 {
		return nil, errors.New("secret key must be at least 32 bytes")
	}

	repositories := db.NewRepositories(database)

	var classifier mood.Classifier
	if config.ClassifierURL != "" {
		classifier = mood.NewRemoteClassifier(config.ClassifierURL, config.ClassifierAPIKey, config.ClassifierTimeout)
	} else {
		classifier = mood.NewKeywordClassifier()
	}
	adapter := mood.NewAdapter(classifier, config.ClassifierTimeout, config.ClassifierCacheTTL)

	handler := &Handler{
		db:             database,
		secretKey:      []byte(config.SecretKey),
		cookieSecure:   config.CookieSecure,
		repositories:   repositories,
		moodAdapter:    adapter,
		authService:    services.NewAuthService(repositories.Users),
		journalService: services.NewJournalService(repositories.Entries, adapter, config.AsyncClassification),
		trendService:   services.NewTrendService(repositories.Entries),
		forumService:   services.NewForumService(repositories.Posts, repositories.Users),
		adminService:   services.NewAdminService(repositories.Users, repositories.Entries, repositories.Posts),
		setupService:   services.NewSetupService(repositories.Users),
	}
	return handler, nil
}

// Start launches background work (the async mood-annotation worker) bound to
// the application lifecycle context.
func (handler *Handler) Start(ctx context.Context) {
	handler.journalService.Start(ctx)
}

func (handler *Handler) Close() {
	handler.moodAdapter.Close()
}

func (handler *Handler) SetupService() *services.SetupService {
	return handler.setupService
}
