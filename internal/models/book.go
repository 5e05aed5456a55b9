package models

import "time"

// BookStatusVoting is the status every newly proposed book starts in.
const BookStatusVoting = "voting"

// Book represents a book proposed for the club to read.
// ProposedBy is a plain reference without a foreign key: it may point at a user that no longer exists.
type Book struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"title" gorm:"not null" validate:"required"`
	Author          string    `json:"author" gorm:"not null" validate:"required"`
	Pages           *int      `json:"pages"`
	Genre           *string   `json:"genre"`
	PublicationYear *int      `json:"publication_year"`
	SeriesOrder     *int      `json:"series_order"`
	ProposedBy      *uint     `json:"proposed_by" gorm:"index"`
	ProposedAt      time.Time `json:"proposed_at"`
	Status          string    `json:"status" gorm:"default:voting"`
}

// BookWithProposer is a book joined with the name of the user who proposed it.
type BookWithProposer struct {
	Book
	ProposedByName *string `json:"proposed_by_name"`
}

// RankedBook is a single row of the ranking: the book, its score and how many members voted on it.
type RankedBook struct {
	BookWithProposer
	Score     int `json:"score"`
	VoteCount int `json:"vote_count"`
}
