package repositories

import (
	"errors"
	"fmt"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// editableBookColumns are the columns a proposer or admin may overwrite.
var editableBookColumns = []string{"title", "author", "pages", "genre", "publication_year", "series_order"}

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{
		db: db,
	}
}

// Create creates a new book in the database.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// GetAllWithProposer retrieves every book with its proposer's name, newest proposals first.
func (r *GORMBookRepository) GetAllWithProposer() ([]models.BookWithProposer, error) {
	books := []models.BookWithProposer{}
	err := r.db.Table("books AS b").
		Select("b.*, u.name AS proposed_by_name").
		Joins("LEFT JOIN users AS u ON b.proposed_by = u.id").
		Order("b.proposed_at DESC").
		Scan(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all books: %w", err)
	}
	return books, nil
}

// GetByID retrieves a single book by its ID from the database.
func (r *GORMBookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get book by ID %d: %w", id, err)
	}
	return &book, nil
}

// Update overwrites the editable columns of the book, including nil values.
func (r *GORMBookRepository) Update(book *models.Book) error {
	res := r.db.Model(&models.Book{ID: book.ID}).Select(editableBookColumns).Updates(book)
	if res.Error != nil {
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %d not found for update: %w", book.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes the votes on a book and then the book itself in one transaction.
func (r *GORMBookRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete votes of book %d: %w", id, err)
		}
		res := tx.Delete(&models.Book{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete book: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("book with ID %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
