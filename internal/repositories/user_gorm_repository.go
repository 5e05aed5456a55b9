package repositories

import (
	"errors"
	"fmt"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetAll retrieves every user ordered by name.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	users := []models.User{}
	if err := r.db.Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// DeleteWithBooks deletes the user together with the books they proposed and the votes on those books.
// Votes the user cast on other books are left in place.
func (r *GORMUserRepository) DeleteWithBooks(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		proposed := tx.Model(&models.Book{}).Select("id").Where("proposed_by = ?", id)
		if err := tx.Where("book_id IN (?)", proposed).Delete(&models.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete votes on books of user %d: %w", id, err)
		}
		if err := tx.Where("proposed_by = ?", id).Delete(&models.Book{}).Error; err != nil {
			return fmt.Errorf("failed to delete books of user %d: %w", id, err)
		}
		return deleteUser(tx, id)
	})
}

// DeleteTransferringBooks reassigns the user's books to transferTo and deletes the user.
func (r *GORMUserRepository) DeleteTransferringBooks(id uint, transferTo uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Book{}).Where("proposed_by = ?", id).Update("proposed_by", transferTo)
		if res.Error != nil {
			return fmt.Errorf("failed to transfer books of user %d to %d: %w", id, transferTo, res.Error)
		}
		return deleteUser(tx, id)
	})
}

func deleteUser(tx *gorm.DB, id uint) error {
	res := tx.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Returning an error rolls back the steps above.
		return fmt.Errorf("user with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
