package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Entries *JournalEntryRepository
	Posts   *PostRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Entries: NewJournalEntryRepository(database),
		Posts:   NewPostRepository(database),
	}
}
