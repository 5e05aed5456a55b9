package services

import (
	"errors"
	"fmt"
	"time"

	"bookclub/internal/models"
	"bookclub/internal/repositories"
)

// BookService handles business logic related to proposed books.
type BookService struct {
	repo      repositories.BookRepository
	userRepo  repositories.UserRepository
	publisher EventPublisher
}

// NewBookService creates a new BookService. publisher may be nil.
func NewBookService(repo repositories.BookRepository, userRepo repositories.UserRepository, publisher EventPublisher) *BookService {
	return &BookService{
		repo:      repo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// CreateBook stores a newly proposed book. The proposer is not checked for existence.
func (s *BookService) CreateBook(book *models.Book) error {
	if book.Status == "" {
		book.Status = models.BookStatusVoting
	}
	if book.ProposedAt.IsZero() {
		book.ProposedAt = time.Now()
	}
	return s.repo.Create(book)
}

// GetAllBooks retrieves all books with proposer names, newest first.
func (s *BookService) GetAllBooks() ([]models.BookWithProposer, error) {
	return s.repo.GetAllWithProposer()
}

// UpdateBook overwrites the editable fields of book id with those of changes.
// Only the proposer or an admin may do this.
func (s *BookService) UpdateBook(id uint, callerID *uint, changes models.Book) (*models.Book, error) {
	book, err := s.authorize(id, callerID)
	if err != nil {
		return nil, err
	}

	book.Title = changes.Title
	book.Author = changes.Author
	book.Pages = changes.Pages
	book.Genre = changes.Genre
	book.PublicationYear = changes.PublicationYear
	book.SeriesOrder = changes.SeriesOrder

	if err := s.repo.Update(book); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return book, nil
}

// DeleteBook removes book id and its votes. Only the proposer or an admin may do this.
func (s *BookService) DeleteBook(id uint, callerID *uint) error {
	if _, err := s.authorize(id, callerID); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("book %d: %w", id, ErrNotFound)
		}
		return err
	}
	publish(s.publisher, EventBookDeleted, map[string]interface{}{
		"book_id":    id,
		"deleted_by": *callerID,
	})
	return nil
}

// authorize loads the book and checks that the caller proposed it or is an admin.
func (s *BookService) authorize(id uint, callerID *uint) (*models.Book, error) {
	book, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if callerID != nil && book.ProposedBy != nil && *book.ProposedBy == *callerID {
		return book, nil
	}
	admin, err := isAdmin(s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, fmt.Errorf("book %d: %w", id, ErrForbidden)
	}
	return book, nil
}
