package repositories

import "bookclub/internal/models"

// VoteRepository defines the interface for vote data access.
type VoteRepository interface {
	// Upsert stores the vote, replacing any earlier vote for the same book and user.
	Upsert(vote *models.Vote) error
	GetByBookAndUser(bookID, userID uint) (*models.Vote, error)
	GetAll() ([]models.Vote, error)
}
