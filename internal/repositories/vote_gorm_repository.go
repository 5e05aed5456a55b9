package repositories

import (
	"errors"
	"fmt"

	"bookclub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMVoteRepository is a GORM implementation of VoteRepository.
type GORMVoteRepository struct {
	db *gorm.DB
}

// NewGORMVoteRepository creates a new instance of GORMVoteRepository.
func NewGORMVoteRepository(db *gorm.DB) *GORMVoteRepository {
	return &GORMVoteRepository{
		db: db,
	}
}

// Upsert inserts the vote or, when (book_id, user_id) already voted, overwrites value and time.
// On return vote.ID holds the ID of the stored row.
func (r *GORMVoteRepository) Upsert(vote *models.Vote) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote_value", "voted_at"}),
	}).Create(vote).Error
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}

	// The ID reported after a conflict update is driver dependent, so read it back.
	stored, err := r.GetByBookAndUser(vote.BookID, vote.UserID)
	if err != nil {
		return err
	}
	vote.ID = stored.ID
	return nil
}

// GetByBookAndUser retrieves the vote a user cast on a book.
func (r *GORMVoteRepository) GetByBookAndUser(bookID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("book_id = ? AND user_id = ?", bookID, userID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vote for book %d by user %d: %w", bookID, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vote for book %d by user %d: %w", bookID, userID, err)
	}
	return &vote, nil
}

// GetAll retrieves every vote.
func (r *GORMVoteRepository) GetAll() ([]models.Vote, error) {
	votes := []models.Vote{}
	if err := r.db.Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all votes: %w", err)
	}
	return votes, nil
}
