package db

import (
	"fmt"
	"testing"

	"github.com/wecare-app/wecare/internal/models"
)

func seedPost(t *testing.T, repo *PostRepository, body string, flagged bool) models.Post {
	t.Helper()
	post := models.Post{
		PublicID: fmt.Sprintf("post-%s", body),
		UserID:   1,
		Body:     body,
		Flagged:  flagged,
	}
	if err := repo.CreatePost(&post); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func TestPostPaginationNewestFirst(t *testing.T) {
	repo := NewPostRepository(openTestDatabase(t))

	for index := 0; index < 5; index++ {
		seedPost(t, repo, fmt.Sprintf("body %d", index), false)
	}

	firstPage, err := repo.ListPostsPage(0, 2)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(firstPage) != 2 || firstPage[0].ID < firstPage[1].ID {
		t.Fatalf("expected two posts newest first, got %+v", firstPage)
	}

	secondPage, err := repo.ListPostsPage(firstPage[1].ID, 2)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(secondPage) != 2 {
		t.Fatalf("expected two posts on second page, got %d", len(secondPage))
	}
	if secondPage[0].ID >= firstPage[1].ID {
		t.Fatal("pages must not overlap")
	}
}

func TestCommentsKeepInsertionOrder(t *testing.T) {
	repo := NewPostRepository(openTestDatabase(t))
	post := seedPost(t, repo, "thread", false)

	for index := 0; index < 3; index++ {
		comment := models.Comment{PostID: post.ID, UserID: 1, Body: fmt.Sprintf("reply %d", index)}
		if err := repo.CreateComment(&comment); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	comments, err := repo.ListComments(post.ID)
	if err != nil {
		t.Fatalf("ListComments returned error: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected three comments, got %d", len(comments))
	}
	for index, comment := range comments {
		if comment.Body != fmt.Sprintf("reply %d", index) {
			t.Fatalf("comment %d out of order: %q", index, comment.Body)
		}
	}
}

func TestFlaggedPostQueue(t *testing.T) {
	repo := NewPostRepository(openTestDatabase(t))

	seedPost(t, repo, "ordinary", false)
	flagged := seedPost(t, repo, "needs review", true)

	queue, err := repo.ListFlaggedPosts(10)
	if err != nil {
		t.Fatalf("ListFlaggedPosts returned error: %v", err)
	}
	if len(queue) != 1 || queue[0].ID != flagged.ID {
		t.Fatalf("unexpected review queue %+v", queue)
	}

	count, err := repo.CountPosts()
	if err != nil || count != 2 {
		t.Fatalf("CountPosts = %d, %v", count, err)
	}
}
