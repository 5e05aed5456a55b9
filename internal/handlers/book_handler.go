package handlers

import (
	"errors"
	"log"
	"time"

	"bookclub/internal/models"
	"bookclub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BookHandler handles HTTP requests for proposed books and their ranking.
type BookHandler struct {
	service  *services.BookService
	ranking  *services.RankingService
	validate *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service *services.BookService, ranking *services.RankingService) *BookHandler {
	return &BookHandler{
		service:  service,
		ranking:  ranking,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the book routes with the Fiber app.
func (h *BookHandler) RegisterRoutes(router fiber.Router) {
	bookRoutes := router.Group("/books")
	bookRoutes.Get("/", h.HandleGetBooks)
	bookRoutes.Post("/", h.HandleCreateBook)
	bookRoutes.Get("/ranking/:session_id", h.HandleGetRanking)
	bookRoutes.Put("/:id", h.HandleUpdateBook)
	bookRoutes.Delete("/:id", h.HandleDeleteBook)
}

// updateBookRequest carries the new book fields and the ID of the member making the change.
type updateBookRequest struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	Pages           *int    `json:"pages"`
	Genre           *string `json:"genre"`
	PublicationYear *int    `json:"publication_year"`
	SeriesOrder     *int    `json:"series_order"`
	UserID          *uint   `json:"user_id"`
}

// deleteBookRequest names the member asking for the deletion. AdminID is accepted for
// compatibility but ignored: admin rights come from the caller's role.
type deleteBookRequest struct {
	UserID  *uint `json:"user_id"`
	AdminID *uint `json:"admin_id"`
}

// HandleCreateBook proposes a new book.
func (h *BookHandler) HandleCreateBook(c *fiber.Ctx) error {
	var book models.Book
	if err := c.BodyParser(&book); err != nil {
		log.Printf("Error parsing create book request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := h.validate.Struct(book); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	book.ID = 0
	book.ProposedAt = time.Time{}
	if err := h.service.CreateBook(&book); err != nil {
		log.Printf("Error creating book: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}

// HandleGetBooks lists all books with their proposer's name, newest first.
func (h *BookHandler) HandleGetBooks(c *fiber.Ctx) error {
	books, err := h.service.GetAllBooks()
	if err != nil {
		log.Printf("Error getting all books: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(books)
}

// HandleGetRanking returns every book ranked by score.
func (h *BookHandler) HandleGetRanking(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	ranked, err := h.ranking.Ranking(sessionID)
	if err != nil {
		log.Printf("Error computing ranking for session %s: %v", sessionID, err)
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(ranked)
}

// HandleUpdateBook lets the proposer or an admin edit a book.
func (h *BookHandler) HandleUpdateBook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var req updateBookRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update book request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	changes := models.Book{
		Title:           req.Title,
		Author:          req.Author,
		Pages:           req.Pages,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		SeriesOrder:     req.SeriesOrder,
	}
	book, err := h.service.UpdateBook(id, req.UserID, changes)
	if err != nil {
		log.Printf("Error updating book %d: %v", id, err)
		return bookError(c, err)
	}
	return c.JSON(book)
}

// HandleDeleteBook lets the proposer or an admin delete a book along with its votes.
func (h *BookHandler) HandleDeleteBook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var req deleteBookRequest
	if err := parseOptionalBody(c, &req); err != nil {
		log.Printf("Error parsing delete book request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	if err := h.service.DeleteBook(id, req.UserID); err != nil {
		log.Printf("Error deleting book %d: %v", id, err)
		return bookError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"id":      id,
	})
}

func bookError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return errorResponse(c, fiber.StatusNotFound, "Book not found")
	case errors.Is(err, services.ErrForbidden):
		return errorResponse(c, fiber.StatusForbidden, "Unauthorized")
	}
	return errorResponse(c, statusFor(err), err.Error())
}
