package services

import (
	"context"
	"errors"
	"strings"

	"github.com/failboard/failboard/models"
)

// Free-text field caps, matching what the boards accept.
const (
	maxTitleLen    = 200
	maxContentsLen = 5000
	maxStoryLen    = 2000
)

// PostDraft carries the writable fields of a new post. Which free-text
// fields are allowed depends on the category: GENERAL takes Contents, every
// other board takes WhatFailed and LessonLearned.
type PostDraft struct {
	Title         string
	Category      models.Category
	Contents      string
	WhatFailed    string
	LessonLearned string
}

// ContentService owns post and comment creation, retrieval, and deletion.
type ContentService struct {
	posts    PostStore
	comments CommentStore
}

// NewContentService creates a ContentService.
func NewContentService(posts PostStore, comments CommentStore) *ContentService {
	return &ContentService{posts: posts, comments: comments}
}

// CreatePost validates the draft against its category and persists it with
// authorID as the immutable owner.
func (s *ContentService) CreatePost(ctx context.Context, authorID uint, draft PostDraft) (*models.Post, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:        authorID,
		Title:         draft.Title,
		Category:      draft.Category,
		Contents:      draft.Contents,
		WhatFailed:    draft.WhatFailed,
		LessonLearned: draft.LessonLearned,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, internal("create post", err)
	}

	// reload with the author projection and zeroed counts
	created, err := s.posts.ByID(ctx, post.ID)
	if err != nil {
		return nil, internal("load created post", err)
	}
	return created, nil
}

// ListPosts returns posts newest-first, optionally restricted to one
// category. An empty category means all boards.
func (s *ContentService) ListPosts(ctx context.Context, category models.Category) ([]models.Post, error) {
	if category != "" && !category.Valid() {
		return nil, invalid("unknown category %q", category)
	}
	posts, err := s.posts.List(ctx, category)
	if err != nil {
		return nil, internal("list posts", err)
	}
	return posts, nil
}

// GetPost returns one post with its author projection and current counts.
func (s *ContentService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.posts.ByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, notFound("post %d not found", postID)
		}
		return nil, internal("load post", err)
	}
	return post, nil
}

// DeletePost removes the post and, by cascade, its comments and votes.
// Only the author may delete; the ownership check and the delete run as one
// atomic unit in the store.
func (s *ContentService) DeletePost(ctx context.Context, postID, requesterID uint) error {
	if err := s.posts.Delete(ctx, postID, requesterID); err != nil {
		switch {
		case errors.Is(err, ErrNoRecord):
			return notFound("post %d not found", postID)
		case errors.Is(err, ErrNotOwner):
			return forbidden("only the author may delete a post")
		default:
			return internal("delete post", err)
		}
	}
	return nil
}

// CreateComment attaches a comment to an existing post.
func (s *ContentService) CreateComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("comment content cannot be empty")
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  authorID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, notFound("post %d not found", postID)
		}
		return nil, internal("create comment", err)
	}
	return comment, nil
}

// ListComments returns a post's comments newest-first.
func (s *ContentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.posts.ByID(ctx, postID); err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, notFound("post %d not found", postID)
		}
		return nil, internal("load post", err)
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, internal("list comments", err)
	}
	return comments, nil
}

// validateDraft is the single exhaustive check deciding which free-text
// fields a category admits.
func validateDraft(d *PostDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return invalid("title cannot be empty")
	}
	if len([]rune(d.Title)) > maxTitleLen {
		return invalid("title exceeds %d characters", maxTitleLen)
	}

	switch d.Category {
	case models.CategoryGeneral:
		if d.WhatFailed != "" || d.LessonLearned != "" {
			return invalid("category %s takes contents only", d.Category)
		}
		if len([]rune(d.Contents)) > maxContentsLen {
			return invalid("contents exceeds %d characters", maxContentsLen)
		}
	case models.CategoryCollege, models.CategoryEntrepreneurs, models.CategoryProfessionals, models.CategoryLife:
		if d.Contents != "" {
			return invalid("category %s takes whatFailed and lessonLearned only", d.Category)
		}
		if len([]rune(d.WhatFailed)) > maxStoryLen {
			return invalid("whatFailed exceeds %d characters", maxStoryLen)
		}
		if len([]rune(d.LessonLearned)) > maxStoryLen {
			return invalid("lessonLearned exceeds %d characters", maxStoryLen)
		}
	default:
		return invalid("unknown category %q", d.Category)
	}
	return nil
}
