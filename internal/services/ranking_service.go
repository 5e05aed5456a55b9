package services

import (
	"sort"

	"bookclub/internal/models"
	"bookclub/internal/repositories"
)

// CanonicalVoteValue is the weight a stored vote value contributes to a score.
// Only -2, -1, 1 and 2 count; anything else, including a missing value, counts as 0.
func CanonicalVoteValue(value *int) int {
	if value == nil {
		return 0
	}
	switch *value {
	case 2, 1, -1, -2:
		return *value
	default:
		return 0
	}
}

// RankBooks scores every book by the sum of the canonical values of its votes and
// orders them by score descending, then by proposal time ascending, then by ID.
// Books without votes are included with a score of 0.
func RankBooks(books []models.BookWithProposer, votes []models.Vote) []models.RankedBook {
	scores := make(map[uint]int, len(books))
	voters := make(map[uint]map[uint]struct{}, len(books))
	for _, v := range votes {
		scores[v.BookID] += CanonicalVoteValue(v.VoteValue)
		if voters[v.BookID] == nil {
			voters[v.BookID] = make(map[uint]struct{})
		}
		voters[v.BookID][v.UserID] = struct{}{}
	}

	ranked := make([]models.RankedBook, 0, len(books))
	for _, b := range books {
		ranked = append(ranked, models.RankedBook{
			BookWithProposer: b,
			Score:            scores[b.ID],
			VoteCount:        len(voters[b.ID]),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.ProposedAt.Equal(b.ProposedAt) {
			return a.ProposedAt.Before(b.ProposedAt)
		}
		return a.ID < b.ID
	})
	return ranked
}

// RankingService computes the book ranking from stored books and votes.
type RankingService struct {
	bookRepo repositories.BookRepository
	voteRepo repositories.VoteRepository
}

// NewRankingService creates a new RankingService.
func NewRankingService(bookRepo repositories.BookRepository, voteRepo repositories.VoteRepository) *RankingService {
	return &RankingService{
		bookRepo: bookRepo,
		voteRepo: voteRepo,
	}
}

// Ranking returns all books ranked by score. Books are not tied to sessions, so the
// ranking covers every book whatever sessionID is given.
func (s *RankingService) Ranking(sessionID string) ([]models.RankedBook, error) {
	books, err := s.bookRepo.GetAllWithProposer()
	if err != nil {
		return nil, err
	}
	votes, err := s.voteRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return RankBooks(books, votes), nil
}
