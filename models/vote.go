package models

import "time"

// VoteState is a user's standing vote on one post. The zero value means no
// vote exists, which is also how absence of a row is reported.
type VoteState int8

const (
	VoteNone VoteState = 0
	VoteUp   VoteState = 1
	VoteDown VoteState = -1
)

// Score is the contribution of this state to a post's net tally.
func (v VoteState) Score() int {
	return int(v)
}

// Vote records one user's vote on one post. The unique index on
// (user_id, post_id) enforces the single-vote invariant at the storage
// layer; toggling a vote off deletes the row rather than zeroing it.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"post_id"`
	Value     int8      `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// State returns the vote's value as a VoteState.
func (v *Vote) State() VoteState {
	return VoteState(v.Value)
}
