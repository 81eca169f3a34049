package handlers

import (
	"errors"
	"log"

	"bookshelf/internal/models"
	"bookshelf/internal/repositories"
	"bookshelf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BookHandler handles HTTP requests for books.
type BookHandler struct {
	service  *services.BookService
	validate *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service *services.BookService) *BookHandler {
	return &BookHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the book routes. authRequired guards the
// write entry point and the owner listing.
func (h *BookHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	bookRoutes := router.Group("/books")
	bookRoutes.Post("/", authRequired, h.HandleCreateBook)
	bookRoutes.Get("/", h.HandleListBooks)
	bookRoutes.Get("/:id", h.HandleGetBook)
	bookRoutes.Put("/:id", h.HandleUpdateBook)
	bookRoutes.Delete("/:id", h.HandleDeleteBook)

	router.Get("/users/me/books", authRequired, h.HandleListMyBooks)
}

// HandleCreateBook creates a new book owned by the authenticated caller.
func (h *BookHandler) HandleCreateBook(c *fiber.Ctx) error {
	var in models.BookCreate
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing create book request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Not logged in",
		})
	}

	book, err := h.service.Create(in, userID)
	if err != nil {
		log.Printf("Error creating book: %v", err)
		if errors.Is(err, services.ErrISBNTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"detail": "ISBN already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not create book",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(book.Out())
}

// HandleListBooks retrieves all books.
func (h *BookHandler) HandleListBooks(c *fiber.Ctx) error {
	books, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error getting all books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not retrieve books",
		})
	}
	return c.JSON(models.BooksOut(books))
}

// HandleGetBook retrieves a single book by its ID.
func (h *BookHandler) HandleGetBook(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	book, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "Book not found",
			})
		}
		log.Printf("Error getting book %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not retrieve book",
		})
	}
	return c.JSON(book.Out())
}

// HandleUpdateBook applies a partial update to an existing book.
func (h *BookHandler) HandleUpdateBook(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	var upd models.BookUpdate
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("Error parsing update book request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if err := h.validate.Struct(upd); err != nil {
		return validationFailed(c, err)
	}

	book, err := h.service.Update(id, upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "Book not found",
			})
		}
		if errors.Is(err, services.ErrISBNTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"detail": "ISBN already registered",
			})
		}
		log.Printf("Error updating book %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not update book",
		})
	}
	return c.JSON(book.Out())
}

// HandleDeleteBook deletes a book by its ID.
func (h *BookHandler) HandleDeleteBook(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "Book not found",
			})
		}
		log.Printf("Error deleting book %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not delete book",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Book deleted successfully",
	})
}

// HandleListMyBooks retrieves the authenticated caller's books.
func (h *BookHandler) HandleListMyBooks(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Not logged in",
		})
	}

	books, err := h.service.GetByUser(userID)
	if err != nil {
		log.Printf("Error getting books for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not retrieve books",
		})
	}
	return c.JSON(models.BooksOut(books))
}
