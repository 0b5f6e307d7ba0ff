package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wecare-app/wecare/internal/models"
)

const MaxPostBodyLength = 4000

const anonymousAuthorName = "Anonymous"

type ForumStore interface {
	CreatePost(post *models.Post) error
	FindPostByPublicID(publicID string) (models.Post, bool, error)
	ListPostsPage(cursorID uint, limit int) ([]models.Post, error)
	CreateComment(comment *models.Comment) error
	ListComments(postID uint) ([]models.Comment, error)
}

type ForumUserReader interface {
	DisplayNameByID(userID uint) (string, error)
}

// PostView is a post as shown to other members: anonymous posts never reveal
// the author.
type PostView struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentView struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ForumService struct {
	posts ForumStore
	users ForumUserReader
}

func NewForumService(posts ForumStore, users ForumUserReader) *ForumService {
	return &ForumService{posts: posts, users: users}
}

func normalizePostBody(raw string) (string, error) {
	body := strings.TrimSpace(raw)
	if body == "" {
		return "", ErrBodyRequired
	}
	if len(body) > MaxPostBodyLength {
		return "", ErrBodyTooLong
	}
	if ContentRejected(body) {
		return "", ErrContentRejected
	}
	return body, nil
}

func (service *ForumService) CreatePost(userID uint, rawBody string, anonymous bool) (models.Post, error) {
	body, err := normalizePostBody(rawBody)
	if err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		PublicID:  uuid.NewString(),
		UserID:    userID,
		Body:      body,
		Anonymous: anonymous,
		Flagged:   DetectDistress(body),
	}
	if err := service.posts.CreatePost(&post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// ListPosts pages newest first. The cursor is the public id of the last post
// from the previous page; an empty cursor starts from the top.
func (service *ForumService) ListPosts(cursor string, limit int) ([]PostView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	cursorID := uint(0)
	if cursor != "" {
		post, found, err := service.posts.FindPostByPublicID(cursor)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNotFound
		}
		cursorID = post.ID
	}

	posts, err := service.posts.ListPostsPage(cursorID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		author, err := service.resolveAuthor(post.UserID, post.Anonymous)
		if err != nil {
			return nil, err
		}
		views = append(views, PostView{
			ID:        post.PublicID,
			Author:    author,
			Body:      post.Body,
			Anonymous: post.Anonymous,
			CreatedAt: post.CreatedAt,
		})
	}
	return views, nil
}

func (service *ForumService) AddComment(userID uint, postPublicID string, rawBody string) (CommentView, error) {
	body, err := normalizePostBody(rawBody)
	if err != nil {
		return CommentView{}, err
	}

	post, found, err := service.posts.FindPostByPublicID(postPublicID)
	if err != nil {
		return CommentView{}, err
	}
	if !found {
		return CommentView{}, ErrNotFound
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  userID,
		Body:    body,
		Flagged: DetectDistress(body),
	}
	if err := service.posts.CreateComment(&comment); err != nil {
		return CommentView{}, err
	}

	author, err := service.resolveAuthor(userID, false)
	if err != nil {
		return CommentView{}, err
	}
	return CommentView{Author: author, Body: comment.Body, CreatedAt: comment.CreatedAt}, nil
}

func (service *ForumService) ListComments(postPublicID string) ([]CommentView, error) {
	post, found, err := service.posts.FindPostByPublicID(postPublicID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	comments, err := service.posts.ListComments(post.ID)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		author, err := service.resolveAuthor(comment.UserID, false)
		if err != nil {
			return nil, err
		}
		views = append(views, CommentView{Author: author, Body: comment.Body, CreatedAt: comment.CreatedAt})
	}
	return views, nil
}

func (service *ForumService) resolveAuthor(userID uint, anonymous bool) (string, error) {
	if anonymous {
		return anonymousAuthorName, nil
	}
	name, err := service.users.DisplayNameByID(userID)
	if err != nil {
		return "", err
	}
	return name, nil
}
