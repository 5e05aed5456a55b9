package repositories

import "bookclub/internal/models"

// BookRepository defines the interface for book data access.
type BookRepository interface {
	Create(book *models.Book) error
	GetAllWithProposer() ([]models.BookWithProposer, error)
	GetByID(id uint) (*models.Book, error)
	Update(book *models.Book) error
	// Delete removes the book and every vote cast on it.
	Delete(id uint) error
}
