package models

import "time"

// Post is a failure story published on one of the fixed boards.
//
// CommentCount and VoteScore are materialized aggregates: they are adjusted
// in the same transaction as the comment or vote mutation that changes them
// and must always equal a recount of the comments/votes tables.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Category      Category  `gorm:"size:16;not null;index" json:"category"`
	Contents      string    `gorm:"type:text" json:"contents,omitempty"`
	WhatFailed    string    `gorm:"type:text" json:"whatFailed,omitempty"`
	LessonLearned string    `gorm:"type:text" json:"lessonLearned,omitempty"`
	CommentCount  int       `gorm:"not null;default:0" json:"commentCount"`
	VoteScore     int       `gorm:"not null;default:0" json:"netVotes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments      []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Votes         []Vote    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
