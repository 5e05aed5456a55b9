package services

import (
	"errors"
	"fmt"
	"time"

	"bookclub/internal/models"
	"bookclub/internal/repositories"
)

// SessionService handles voting sessions, their book constraints and book validation.
type SessionService struct {
	repo repositories.SessionRepository
}

// NewSessionService creates a new SessionService.
func NewSessionService(repo repositories.SessionRepository) *SessionService {
	return &SessionService{
		repo: repo,
	}
}

// CreateSession stores a new voting session, active unless a status is given.
func (s *SessionService) CreateSession(session *models.VotingSession) error {
	if session.Status == "" {
		session.Status = models.SessionStatusActive
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	return s.repo.Create(session)
}

// GetAllSessions retrieves all sessions, earliest deadline first.
func (s *SessionService) GetAllSessions() ([]models.VotingSession, error) {
	return s.repo.GetAll()
}

// AddConstraint attaches a book constraint to an existing session.
func (s *SessionService) AddConstraint(sessionID uint, constraint *models.BookConstraint) error {
	if err := s.ensureSession(sessionID); err != nil {
		return err
	}
	constraint.ID = 0
	constraint.SessionID = sessionID
	return s.repo.CreateConstraint(constraint)
}

// GetConstraints lists the constraints of an existing session.
func (s *SessionService) GetConstraints(sessionID uint) ([]models.BookConstraint, error) {
	if err := s.ensureSession(sessionID); err != nil {
		return nil, err
	}
	return s.repo.GetConstraints(sessionID)
}

// ValidateBook applies the club-wide rules and, when attrs names a session, that session's constraints.
func (s *SessionService) ValidateBook(attrs BookAttributes) (ValidationResult, error) {
	var constraints []models.BookConstraint
	if attrs.SessionID != nil {
		var err error
		constraints, err = s.GetConstraints(*attrs.SessionID)
		if err != nil {
			return ValidationResult{}, err
		}
	}
	return ValidateBook(attrs, constraints), nil
}

func (s *SessionService) ensureSession(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("voting session %d: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}
