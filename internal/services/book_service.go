package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"bookshelf/internal/models"
	"bookshelf/internal/repositories"
)

// ErrISBNTaken is returned when a create or update would store an ISBN
// another book already carries.
var ErrISBNTaken = errors.New("isbn already registered")

// EventPublisher publishes book lifecycle events to the message broker.
// A nil publisher disables eventing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// BookService handles business logic for books.
type BookService struct {
	repo   repositories.BookRepository
	events EventPublisher
}

// NewBookService creates a new BookService. events may be nil.
func NewBookService(repo repositories.BookRepository, events EventPublisher) *BookService {
	return &BookService{
		repo:   repo,
		events: events,
	}
}

// GetAll retrieves all books.
func (s *BookService) GetAll() ([]models.Book, error) {
	return s.repo.GetAll()
}

// GetByID retrieves a single book by its ID.
func (s *BookService) GetByID(id uint) (*models.Book, error) {
	return s.repo.GetByID(id)
}

// GetByUser retrieves all books owned by the given user.
func (s *BookService) GetByUser(userID uint) ([]models.Book, error) {
	return s.repo.GetByUser(userID)
}

// Create stores a new book owned by userID and returns it with its
// generated id populated.
func (s *BookService) Create(in models.BookCreate, userID uint) (*models.Book, error) {
	book := models.NewBook(in, userID)
	if err := s.repo.Create(book); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrISBNTaken
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.publishEvent("book.created", book)
	return book, nil
}

// Update applies a partial update to an existing book. Fields absent
// from the payload keep their stored value.
func (s *BookService) Update(id uint, upd models.BookUpdate) (*models.Book, error) {
	book, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	upd.Apply(book)
	if err := s.repo.Update(book); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrISBNTaken
		}
		return nil, err
	}

	s.publishEvent("book.updated", book)
	return book, nil
}

// Delete removes a book by its ID.
func (s *BookService) Delete(id uint) error {
	book, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publishEvent("book.deleted", book)
	return nil
}

// publishEvent emits a lifecycle event. Publishing is best effort: a
// broker failure is logged and never fails the request.
func (s *BookService) publishEvent(event string, book *models.Book) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"book_id": book.ID,
		"title":   book.Title,
		"user_id": book.UserID,
		"at":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for book %d: %v", event, book.ID, err)
		return
	}
	if err := s.events.Publish(event, body); err != nil {
		log.Printf("Warning: failed to publish %s event for book %d: %v", event, book.ID, err)
	}
}
