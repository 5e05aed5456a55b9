package services

import (
	"errors"
	"time"

	"bookclub/internal/models"
	"bookclub/internal/repositories"
)

// VoteService handles casting and looking up votes.
type VoteService struct {
	repo      repositories.VoteRepository
	publisher EventPublisher
}

// NewVoteService creates a new VoteService. publisher may be nil.
func NewVoteService(repo repositories.VoteRepository, publisher EventPublisher) *VoteService {
	return &VoteService{
		repo:      repo,
		publisher: publisher,
	}
}

// CastVote records the vote, replacing any earlier vote by the same user on the same book.
// Neither the value nor the referenced book and user are checked.
func (s *VoteService) CastVote(vote *models.Vote) error {
	vote.VotedAt = time.Now()
	if err := s.repo.Upsert(vote); err != nil {
		return err
	}
	publish(s.publisher, EventVoteCast, map[string]interface{}{
		"vote_id":    vote.ID,
		"book_id":    vote.BookID,
		"user_id":    vote.UserID,
		"vote_value": vote.VoteValue,
	})
	return nil
}

// GetVote returns the user's vote on the book, or nil if they have not voted.
func (s *VoteService) GetVote(bookID, userID uint) (*models.Vote, error) {
	vote, err := s.repo.GetByBookAndUser(bookID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return vote, err
}
