package repositories

import (
	"errors"
	"fmt"

	"bookshelf/internal/models"

	"gorm.io/gorm"
)

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

// GetAll retrieves all books in insertion order.
func (r *GORMBookRepository) GetAll() ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get all books: %w", err)
	}
	return books, nil
}

// GetByID retrieves a single book by its ID.
func (r *GORMBookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by ID %d: %w", id, err)
	}
	return &book, nil
}

// GetByUser retrieves every book owned by the given user.
func (r *GORMBookRepository) GetByUser(userID uint) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Order("id").Find(&books, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get books for user %d: %w", userID, err)
	}
	return books, nil
}

// Create inserts a new book and populates its generated ID.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update persists field changes of an already-loaded book.
func (r *GORMBookRepository) Update(book *models.Book) error {
	// Save updates all fields, including ones set back to zero values.
	res := r.db.Save(book)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missing row, so we
		// check RowsAffected.
		return ErrNotFound
	}
	return nil
}

// Delete removes a book by its ID.
func (r *GORMBookRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
