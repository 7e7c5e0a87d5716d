package services

import (
	"context"
	"errors"

	"github.com/failboard/failboard/models"
)

// VoteResult is the outcome of a cast: the post's net tally after the
// transition and the caller's standing vote (VoteNone after a toggle-off).
type VoteResult struct {
	NetVotes int              `json:"netVotes"`
	UserVote models.VoteState `json:"userVote"`
}

// VoteLedger keeps the per-user-per-post vote state and the denormalized
// net tally consistent with each other.
type VoteLedger struct {
	votes VoteStore
}

// NewVoteLedger creates a VoteLedger.
func NewVoteLedger(votes VoteStore) *VoteLedger {
	return &VoteLedger{votes: votes}
}

// CastVote applies one press of the up or down button:
//
//	no vote yet            -> create with the requested direction
//	same direction again   -> toggle off, the vote is retracted
//	opposite direction     -> flip, moving the tally by two
//
// The read-modify-write is serialized per (user, post) by the store, so the
// loser of a race computes its transition from the winner's committed state.
func (l *VoteLedger) CastVote(ctx context.Context, userID, postID uint, upvote bool) (*VoteResult, error) {
	requested := models.VoteDown
	if upvote {
		requested = models.VoteUp
	}

	state, net, err := l.votes.Cast(ctx, userID, postID, func(current models.VoteState) models.VoteState {
		return resolveVote(current, requested)
	})
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, notFound("post %d not found", postID)
		}
		return nil, internal("cast vote", err)
	}
	return &VoteResult{NetVotes: net, UserVote: state}, nil
}

// UserVote returns the caller's standing vote on a post.
func (l *VoteLedger) UserVote(ctx context.Context, userID, postID uint) (models.VoteState, error) {
	state, err := l.votes.State(ctx, userID, postID)
	if err != nil {
		return models.VoteNone, internal("load vote", err)
	}
	return state, nil
}

// resolveVote decides the next vote state from the committed current state
// and the requested direction.
func resolveVote(current, requested models.VoteState) models.VoteState {
	if current == requested {
		return models.VoteNone
	}
	return requested
}
