package db

import (
	"github.com/wecare-app/wecare/internal/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	database *gorm.DB
}

func NewPostRepository(database *gorm.DB) *PostRepository {
	return &PostRepository{database: database}
}

func (repo *PostRepository) CreatePost(post *models.Post) error {
	return repo.database.Create(post).Error
}

func (repo *PostRepository) FindPostByPublicID(publicID string) (models.Post, bool, error) {
	post := models.Post{}
	result := repo.database.Where("public_id = ?", publicID).Limit(1).Find(&post)
	if result.Error != nil {
		return models.Post{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Post{}, false, nil
	}
	return post, true, nil
}

func (repo *PostRepository) ListPostsPage(cursorID uint, limit int) ([]models.Post, error) {
	query := repo.database.Model(&models.Post{})
	if cursorID > 0 {
		query = query.Where("id < ?", cursorID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	posts := make([]models.Post, 0)
	if err := query.Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepository) CreateComment(comment *models.Comment) error {
	return repo.database.Create(comment).Error
}

func (repo *PostRepository) ListComments(postID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	if err := repo.database.
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *PostRepository) CountPosts() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PostRepository) ListFlaggedPosts(limit int) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	query := repo.database.Where("flagged = ?", true).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
