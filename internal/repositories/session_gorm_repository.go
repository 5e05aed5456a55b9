package repositories

import (
	"errors"
	"fmt"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// GORMSessionRepository is a GORM implementation of SessionRepository.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{
		db: db,
	}
}

func (r *GORMSessionRepository) Create(session *models.VotingSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create voting session: %w", err)
	}
	return nil
}

func (r *GORMSessionRepository) GetAll() ([]models.VotingSession, error) {
	sessions := []models.VotingSession{}
	if err := r.db.Order("end_date").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to get voting sessions: %w", err)
	}
	return sessions, nil
}

func (r *GORMSessionRepository) GetByID(id uint) (*models.VotingSession, error) {
	var session models.VotingSession
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("voting session with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get voting session by ID %d: %w", id, err)
	}
	return &session, nil
}

func (r *GORMSessionRepository) CreateConstraint(constraint *models.BookConstraint) error {
	if err := r.db.Create(constraint).Error; err != nil {
		return fmt.Errorf("failed to create book constraint: %w", err)
	}
	return nil
}

func (r *GORMSessionRepository) GetConstraints(sessionID uint) ([]models.BookConstraint, error) {
	constraints := []models.BookConstraint{}
	if err := r.db.Where("session_id = ?", sessionID).Order("id").Find(&constraints).Error; err != nil {
		return nil, fmt.Errorf("failed to get constraints of session %d: %w", sessionID, err)
	}
	return constraints, nil
}
