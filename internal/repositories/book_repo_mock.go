package repositories

import (
	"sort"
	"sync"

	"bookshelf/internal/models"
)

// MockBookRepository is an in-memory implementation of BookRepository.
// It mirrors the relational semantics (generated ids, unique isbn) so
// handlers can be exercised without a database.
type MockBookRepository struct {
	books  map[uint]models.Book
	nextID uint
	mu     sync.RWMutex
}

// NewMockBookRepository creates a new instance of MockBookRepository.
func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{
		books:  make(map[uint]models.Book),
		nextID: 1,
	}
}

// GetAll returns all books ordered by id.
func (r *MockBookRepository) GetAll() ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(models.Book) bool { return true }), nil
}

// GetByID returns a book by its ID.
func (r *MockBookRepository) GetByID(id uint) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &book, nil
}

// GetByUser returns all books owned by the given user, ordered by id.
func (r *MockBookRepository) GetByUser(userID uint) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(b models.Book) bool { return b.UserID == userID }), nil
}

// Create adds a new book, assigning the next generated id.
func (r *MockBookRepository) Create(book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isbnTaken(book.ISBN, 0) {
		return ErrDuplicate
	}
	book.ID = r.nextID
	r.nextID++
	r.books[book.ID] = *book
	return nil
}

// Update replaces the stored row for an existing book.
func (r *MockBookRepository) Update(book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.ID]; !ok {
		return ErrNotFound
	}
	if r.isbnTaken(book.ISBN, book.ID) {
		return ErrDuplicate
	}
	r.books[book.ID] = *book
	return nil
}

// Delete removes a book by its ID.
func (r *MockBookRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *MockBookRepository) collect(keep func(models.Book) bool) []models.Book {
	list := make([]models.Book, 0, len(r.books))
	for _, b := range r.books {
		if keep(b) {
			list = append(list, b)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (r *MockBookRepository) isbnTaken(isbn *string, excludeID uint) bool {
	if isbn == nil {
		return false
	}
	for _, b := range r.books {
		if b.ID != excludeID && b.ISBN != nil && *b.ISBN == *isbn {
			return true
		}
	}
	return false
}
