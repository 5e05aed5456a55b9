package models

import "time"

// Vote is a member's weighted opinion on a book. Only one vote exists per (book, user).
// VoteValue is expected to be one of -2, -1, 1, 2 but is stored as submitted.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID    uint      `json:"book_id" gorm:"not null;uniqueIndex:idx_votes_book_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_book_user"`
	VoteValue *int      `json:"vote_value"`
	VotedAt   time.Time `json:"voted_at"`
}
