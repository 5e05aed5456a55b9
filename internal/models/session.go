package models

import (
	"strings"
	"time"
)

// SessionStatusActive is the default status of a voting session.
const SessionStatusActive = "active"

// VotingSession is a named voting round with a deadline.
type VotingSession struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	EndDate   time.Time `json:"end_date" gorm:"not null" validate:"required"`
	Status    string    `json:"status" gorm:"default:active"`
	CreatedAt time.Time `json:"created_at"`
}

// BookConstraint restricts which books qualify for a session.
// AllowedGenres is a comma separated list; empty means any genre.
type BookConstraint struct {
	ID                 uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID          uint    `json:"session_id" gorm:"index"`
	MaxPages           *int    `json:"max_pages"`
	AllowedGenres      *string `json:"allowed_genres"`
	MinPublicationYear *int    `json:"min_publication_year"`
	MaxPublicationYear *int    `json:"max_publication_year"`
	MinSeriesOrder     *int    `json:"min_series_order"`
}

// Genres splits AllowedGenres into trimmed, non-empty entries.
func (c *BookConstraint) Genres() []string {
	if c.AllowedGenres == nil {
		return nil
	}
	var genres []string
	for _, g := range strings.Split(*c.AllowedGenres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
