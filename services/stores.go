package services

import (
	"context"
	"errors"

	"github.com/failboard/failboard/models"
)

// Storage sentinels. Store implementations translate their driver's
// condition into these; services translate them into caller-facing kinds.
var (
	// ErrNoRecord reports that a looked-up entity does not exist.
	ErrNoRecord = errors.New("no such record")
	// ErrDuplicate reports a unique-key violation on insert.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotOwner reports that a guarded mutation was attempted by a
	// non-owner.
	ErrNotOwner = errors.New("not the owner")
)

// UserStore adapts durable storage for user credentials.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id uint) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// PostStore adapts durable storage for posts.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	// ByID returns the post with its author preloaded.
	ByID(ctx context.Context, id uint) (*models.Post, error)
	// List returns posts newest-first with authors preloaded, optionally
	// restricted to one category.
	List(ctx context.Context, category models.Category) ([]models.Post, error)
	// Delete removes the post and, by cascade, its comments and votes.
	// The ownership check and the delete are one atomic unit: of two
	// racing deletes at most one succeeds, the other sees ErrNoRecord.
	Delete(ctx context.Context, postID, requesterID uint) error
}

// CommentStore adapts durable storage for comments.
type CommentStore interface {
	// Create persists the comment and bumps the post's comment count in
	// the same transaction. ErrNoRecord when the post does not exist.
	Create(ctx context.Context, comment *models.Comment) error
	// ListByPost returns comments newest-first with authors preloaded.
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
}

// VoteStore adapts durable storage for the per-user vote ledger.
type VoteStore interface {
	// Cast atomically reads the caller's current vote on the post, applies
	// decide to pick the next state, persists the transition, and adjusts
	// the post's tally by the state difference. The whole read-modify-write
	// is serialized per post, so two concurrent casts for the same
	// (user, post) cannot double-toggle. Returns the committed state and
	// the post's resulting net tally; ErrNoRecord when the post is absent.
	Cast(ctx context.Context, userID, postID uint, decide func(current models.VoteState) models.VoteState) (models.VoteState, int, error)
	// State returns the caller's standing vote, VoteNone when absent.
	State(ctx context.Context, userID, postID uint) (models.VoteState, error)
}
