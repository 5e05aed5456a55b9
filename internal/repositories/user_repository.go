package repositories

import "bookclub/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	GetByID(id uint) (*models.User, error)
	// DeleteWithBooks removes the votes on the user's books, the books, then the user.
	DeleteWithBooks(id uint) error
	// DeleteTransferringBooks hands the user's books to another user, then removes the user.
	DeleteTransferringBooks(id uint, transferTo uint) error
}
