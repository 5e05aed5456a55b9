package services

import (
	"errors"
	"fmt"
	"time"

	"bookclub/internal/models"
	"bookclub/internal/repositories"
)

// DeleteUserRequest describes who deletes a user and what happens to the books they proposed.
type DeleteUserRequest struct {
	AdminID         *uint `json:"admin_id"`
	TransferBooksTo *uint `json:"transfer_books_to"`
	DeleteBooks     bool  `json:"delete_books"`
}

// UserService handles business logic related to club members.
type UserService struct {
	repo      repositories.UserRepository
	publisher EventPublisher
}

// NewUserService creates a new UserService. publisher may be nil.
func NewUserService(repo repositories.UserRepository, publisher EventPublisher) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateUser stores a new user, defaulting the role to member.
func (s *UserService) CreateUser(user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	return s.repo.Create(user)
}

// GetAllUsers retrieves all users ordered by name.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// DeleteUser removes a user on behalf of an admin. Exactly one of DeleteBooks or
// TransferBooksTo decides the fate of the user's books; DeleteBooks wins if both are set.
// Votes the user cast on other books are kept.
func (s *UserService) DeleteUser(id uint, req DeleteUserRequest) error {
	if err := requireAdmin(s.repo, req.AdminID); err != nil {
		return err
	}

	var err error
	switch {
	case req.DeleteBooks:
		err = s.repo.DeleteWithBooks(id)
	case req.TransferBooksTo != nil:
		err = s.repo.DeleteTransferringBooks(id, *req.TransferBooksTo)
	default:
		return fmt.Errorf("specify transfer_books_to or delete_books: %w", ErrMissingParameter)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return err
	}

	payload := map[string]interface{}{
		"user_id":       id,
		"books_deleted": req.DeleteBooks,
	}
	if !req.DeleteBooks {
		payload["books_transferred_to"] = *req.TransferBooksTo
	}
	publish(s.publisher, EventUserDeleted, payload)
	return nil
}

// requireAdmin fails with ErrForbidden unless callerID names an existing admin.
func requireAdmin(repo repositories.UserRepository, callerID *uint) error {
	admin, err := isAdmin(repo, callerID)
	if err != nil {
		return err
	}
	if !admin {
		return fmt.Errorf("only admin can delete users: %w", ErrForbidden)
	}
	return nil
}

func isAdmin(repo repositories.UserRepository, callerID *uint) (bool, error) {
	if callerID == nil {
		return false, nil
	}
	caller, err := repo.GetByID(*callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return caller.IsAdmin(), nil
}
