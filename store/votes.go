package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/failboard/failboard/models"
	"github.com/failboard/failboard/services"
)

// VoteStore persists the per-user vote ledger and keeps the post tally in
// step with it.
type VoteStore struct {
	db *gorm.DB
}

// NewVoteStore creates a VoteStore over the given database handle.
func NewVoteStore(db *gorm.DB) *VoteStore {
	return &VoteStore{db: db}
}

// Cast runs the ledger's read-modify-write inside one transaction. The post
// row is locked FOR UPDATE first, which serializes every cast on that post:
// the current-vote read, the transition, and the tally adjustment commit as
// one unit, so a concurrent identical request observes the committed state
// rather than a stale one.
func (s *VoteStore) Cast(ctx context.Context, userID, postID uint, decide func(current models.VoteState) models.VoteState) (models.VoteState, int, error) {
	var final models.VoteState
	var net int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrNoRecord
			}
			return err
		}

		var vote models.Vote
		current := models.VoteNone
		exists := true
		if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&vote).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			exists = false
		} else {
			current = vote.State()
		}

		next := decide(current)
		switch {
		case next == current:
			// no transition
		case next == models.VoteNone:
			if err := tx.Delete(&vote).Error; err != nil {
				return err
			}
		case !exists:
			vote = models.Vote{UserID: userID, PostID: postID, Value: int8(next)}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		default:
			if err := tx.Model(&vote).UpdateColumn("value", int8(next)).Error; err != nil {
				return err
			}
		}

		if delta := next.Score() - current.Score(); delta != 0 {
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("vote_score", gorm.Expr("vote_score + ?", delta)).Error; err != nil {
				return err
			}
			net = post.VoteScore + delta
		} else {
			net = post.VoteScore
		}
		final = next
		return nil
	})
	if err != nil {
		return models.VoteNone, 0, err
	}
	return final, net, nil
}

// State returns the user's standing vote on the post, VoteNone when absent.
func (s *VoteStore) State(ctx context.Context, userID, postID uint) (models.VoteState, error) {
	var vote models.Vote
	if err := s.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).First(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.VoteNone, nil
		}
		return models.VoteNone, err
	}
	return vote.State(), nil
}
