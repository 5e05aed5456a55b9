package repositories

import "bookclub/internal/models"

// SessionRepository defines the interface for voting session and constraint data access.
type SessionRepository interface {
	Create(session *models.VotingSession) error
	GetAll() ([]models.VotingSession, error)
	GetByID(id uint) (*models.VotingSession, error)
	CreateConstraint(constraint *models.BookConstraint) error
	GetConstraints(sessionID uint) ([]models.BookConstraint, error)
}
